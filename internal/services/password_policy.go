package services

import (
	"errors"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var ErrWeakPassword = errors.New("weak password")

// commonPasswords lists lower-cased passwords that pass the character class
// checks but appear at the top of every breach corpus.
var commonPasswords = map[string]struct{}{
	"password1":   {},
	"password123": {},
	"passw0rd":    {},
	"qwerty123":   {},
	"welcome1":    {},
	"letmein1":    {},
	"iloveyou1":   {},
	"admin123":    {},
	"abc12345":    {},
	"contraseña1": {},
	"contrasena1": {},
	"vitalmente1": {},
}

// ValidatePasswordStrength requires 8 characters and at most 72 bytes, mixing
// upper case, lower case and digits. bcrypt ignores input past 72 bytes.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}
	if _, common := commonPasswords[strings.ToLower(password)]; common {
		return ErrWeakPassword
	}

	var classes [3]bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			classes[0] = true
		case unicode.IsLower(char):
			classes[1] = true
		case unicode.IsDigit(char):
			classes[2] = true
		}
	}
	for _, present := range classes {
		if !present {
			return ErrWeakPassword
		}
	}
	return nil
}

package services

import (
	"errors"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeAuthEmail lower-cases and trims raw. It returns "" unless the
// result is a bare address such as "ana@example.com"; display-name forms
// like "Ana <ana@example.com>" are rejected.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || len(email) > maxEmailLength {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

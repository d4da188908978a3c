// Package security holds credential helpers shared by the API and the
// operator CLI.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// PasswordAlphabet skips look-alike characters (0/O, 1/l/I).
	PasswordAlphabet = upperAlphabet + lowerAlphabet + digitAlphabet

	minTemporaryPasswordLength = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns an unbiased string of length characters drawn from
// alphabet with crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length > 0 && alphabet == "" {
		return "", errEmptyAlphabet
	}

	value := make([]byte, length)
	for index := range value {
		char, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		value[index] = char
	}
	return string(value), nil
}

// TemporaryPassword returns a password of at least eight characters that
// always mixes upper case, lower case and digits, so it satisfies the
// account password policy.
func TemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	value := make([]byte, 0, length)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		char, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		value = append(value, char)
	}
	rest, err := RandomString(length-len(value), PasswordAlphabet)
	if err != nil {
		return "", err
	}
	value = append(value, rest...)

	for index := len(value) - 1; index > 0; index-- {
		swap, err := randomIndex(index + 1)
		if err != nil {
			return "", err
		}
		value[index], value[swap] = value[swap], value[index]
	}
	return string(value), nil
}

func randomChar(alphabet string) (byte, error) {
	position, err := randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[position], nil
}

func randomIndex(limit int) (int, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		return 0, err
	}
	return int(position.Int64()), nil
}

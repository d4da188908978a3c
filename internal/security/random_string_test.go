package security

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	_, err := RandomString(-1, "abc")
	assert.ErrorIs(t, err, errNegativeLength)

	_, err = RandomString(1, "")
	assert.ErrorIs(t, err, errEmptyAlphabet)

	empty, err := RandomString(0, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	single, err := RandomString(8, "X")
	require.NoError(t, err)
	assert.Equal(t, "XXXXXXXX", single)

	value, err := RandomString(64, PasswordAlphabet)
	require.NoError(t, err)
	assert.Len(t, value, 64)
	for _, char := range value {
		assert.True(t, strings.ContainsRune(PasswordAlphabet, char), "unexpected char %q", char)
	}
}

func TestRandomStringUsesWholeAlphabet(t *testing.T) {
	t.Parallel()

	seen := make(map[rune]bool)
	for attempt := 0; attempt < 20; attempt++ {
		value, err := RandomString(64, "abcd")
		require.NoError(t, err)
		for _, char := range value {
			seen[char] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestTemporaryPasswordMixesCharacterClasses(t *testing.T) {
	t.Parallel()

	short, err := TemporaryPassword(3)
	require.NoError(t, err)
	assert.Len(t, short, minTemporaryPasswordLength)

	for attempt := 0; attempt < 100; attempt++ {
		password, err := TemporaryPassword(12)
		require.NoError(t, err)
		require.Len(t, password, 12)

		var upper, lower, digit bool
		for _, char := range password {
			require.True(t, strings.ContainsRune(PasswordAlphabet, char), "unexpected char %q in %q", char, password)
			upper = upper || unicode.IsUpper(char)
			lower = lower || unicode.IsLower(char)
			digit = digit || unicode.IsDigit(char)
		}
		require.True(t, upper && lower && digit, "password %q misses a character class", password)
	}
}

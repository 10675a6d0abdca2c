package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Str0ng!pass"))
	assert.NoError(t, ValidatePasswordStrength("NoDigits!needed"))

	cases := map[string]string{
		"Sh0rt!a":        "must have at least 8 characters",
		"nouppercase1!":  "must contain an uppercase letter",
		"NOLOWERCASE1!":  "must contain a lowercase letter",
		"NoSymbolsHere1": "must contain a symbol",
	}
	for password, want := range cases {
		err := ValidatePasswordStrength(password)
		assert.Error(t, err, password)
		assert.Contains(t, err.Error(), want)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("user@example.com"))
	assert.True(t, isValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, isValidEmail("not-an-email"))
	assert.False(t, isValidEmail("user@"))
}

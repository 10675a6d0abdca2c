package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationFailed(errs []ValidationError) *DomainError {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Field + " (" + e.Message + ")"
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(msgs, ", "),
	}
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// ValidatePasswordStrength enforces the policy applied on registration and
// reset: at least 8 characters with an uppercase letter, a lowercase letter
// and a symbol.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ValidationError{"password", "must have at least 8 characters"}
	}

	hasUpper := false
	hasLower := false
	hasSymbol := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsPunct(char), unicode.IsSymbol(char):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return ValidationError{"password", "must contain an uppercase letter"}
	}
	if !hasLower {
		return ValidationError{"password", "must contain a lowercase letter"}
	}
	if !hasSymbol {
		return ValidationError{"password", "must contain a symbol"}
	}
	return nil
}

// src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxUsernameLength = 50
	MaxEmailLength    = 254
	MaxQuestionLength = 2000
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateUsername checks shape and length of a username.
func ValidateUsername(s string) error {
	if err := ValidateStringNotEmpty(s, "Username"); err != nil {
		return err
	}
	if err := ValidateStringMaxLength(s, MaxUsernameLength, "Username"); err != nil {
		return err
	}
	if !usernameRegex.MatchString(s) {
		return fmt.Errorf("%w: Username may only contain letters, numbers, dots, dashes and underscores", ErrValidationFailed)
	}
	return nil
}

// ValidateEmail checks shape and length of an email address.
func ValidateEmail(s string) error {
	if err := ValidateStringNotEmpty(s, "Email"); err != nil {
		return err
	}
	if err := ValidateStringMaxLength(s, MaxEmailLength, "Email"); err != nil {
		return err
	}
	if !emailRegex.MatchString(s) {
		return fmt.Errorf("%w: invalid email format", ErrValidationFailed)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(s string) error {
	if utf8.RuneCountInString(s) < 6 {
		return fmt.Errorf("%w: Password must be at least 6 characters long", ErrValidationFailed)
	}
	return nil
}

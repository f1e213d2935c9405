package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateFullName checks if a member or account name is valid
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "fullName", Message: "full name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "fullName", Message: "full name must be at least 2 characters"}
	}
	return nil
}

// ValidateDates checks that a death date, when present, does not precede the
// birth date. Dates are the contract's YYYY-MM-DD strings.
func ValidateDates(birthDate, deathDate *string) error {
	if birthDate == nil || deathDate == nil {
		return nil
	}
	birth, err := time.Parse("2006-01-02", *birthDate)
	if err != nil {
		return ValidationError{Field: "birthDate", Message: "invalid date format, expected YYYY-MM-DD"}
	}
	death, err := time.Parse("2006-01-02", *deathDate)
	if err != nil {
		return ValidationError{Field: "deathDate", Message: "invalid date format, expected YYYY-MM-DD"}
	}
	if death.Before(birth) {
		return ValidationError{Field: "deathDate", Message: "death date cannot precede birth date"}
	}
	return nil
}

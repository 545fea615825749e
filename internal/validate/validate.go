// Package validate holds the contact-field rules shared by the booking
// API and the client flow engine, so both sides reject the same input.
package validate

import (
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{8,}$`)
)

// FieldError reports which field failed and why.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// Name requires a trimmed length of at least 2 and letters/whitespace only.
func Name(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &FieldError{Field: "client_name", Message: "Name is required"}
	}
	if len(trimmed) < 2 {
		return &FieldError{Field: "client_name", Message: "Name must be at least 2 characters"}
	}
	if !nameRe.MatchString(name) {
		return &FieldError{Field: "client_name", Message: "Name should contain only letters and spaces"}
	}
	return nil
}

// Email applies a lightweight shape check, not full RFC validation.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if !emailRe.MatchString(email) {
		return &FieldError{Field: "email", Message: "Please enter a valid email"}
	}
	return nil
}

// Phone allows an optional leading +, then at least 8 of digits,
// spaces, hyphens and parentheses.
func Phone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return &FieldError{Field: "phone", Message: "Phone is required"}
	}
	if !phoneRe.MatchString(trimmed) {
		return &FieldError{Field: "phone", Message: "Please enter a valid phone number"}
	}
	return nil
}

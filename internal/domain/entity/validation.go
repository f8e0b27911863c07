package entity

import (
	"net/mail"
	"strings"
)

// Field length limits shared across entities.
const (
	maxNameLength  = 100
	maxTitleLength = 200
	maxEmailLength = 254
)

// ValidateEmail validates the format of an email address.
// Returns a ValidationError if the address is malformed or too long.
func ValidateEmail(address string) error {
	if address == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if len(address) > maxEmailLength {
		return &ValidationError{Field: "email", Message: "is too long"}
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	// mail.ParseAddress accepts display names ("A <a@b.c>"); only the bare
	// address form is stored.
	if parsed.Address != strings.TrimSpace(address) {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return nil
}

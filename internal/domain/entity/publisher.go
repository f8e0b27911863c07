// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as User, Publisher, Article and
// Newsletter, along with their validation rules and domain-specific errors.
package entity

import "time"

// Publisher represents a publishing house that employs journalists and editors.
// Readers subscribe to publishers to receive their approved content.
type Publisher struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Validate validates the Publisher entity fields.
func (p *Publisher) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(p.Name) > maxNameLength {
		return &ValidationError{Field: "name", Message: "is too long"}
	}
	return nil
}

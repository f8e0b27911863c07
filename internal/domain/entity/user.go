package entity

import "time"

// Role identifies what a user is allowed to do in the system.
type Role string

// The closed set of user roles.
const (
	// RoleReader consumes content and manages subscriptions.
	RoleReader Role = "Reader"
	// RoleJournalist authors articles and newsletters.
	RoleJournalist Role = "Journalist"
	// RoleEditor authors content and approves publisher content.
	RoleEditor Role = "Editor"
)

// IsValid reports whether the role is one of the known role variants.
func (r Role) IsValid() bool {
	switch r {
	case RoleReader, RoleJournalist, RoleEditor:
		return true
	}
	return false
}

// CanPublish reports whether the role may create articles and newsletters.
func (r Role) CanPublish() bool {
	return r == RoleJournalist || r == RoleEditor
}

// CanApprove reports whether the role may toggle editor approval.
func (r Role) CanApprove() bool {
	return r == RoleEditor
}

// User represents an account in the system. Journalists and editors may be
// employed by a publisher; readers never are. Subscription sets are stored in
// join tables and loaded on demand by the repository.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	PublisherID  *int64
	CreatedAt    time.Time
}

// HasPublisher reports whether the user is employed by a publisher.
func (u *User) HasPublisher() bool {
	return u.PublisherID != nil
}

// Validate validates the User entity fields.
func (u *User) Validate() error {
	if u.Username == "" {
		return &ValidationError{Field: "username", Message: "is required"}
	}
	if len(u.Username) > maxNameLength {
		return &ValidationError{Field: "username", Message: "is too long"}
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	if u.Email != "" {
		if err := ValidateEmail(u.Email); err != nil {
			return err
		}
	}
	// Readers are never attached to a publisher.
	if u.Role == RoleReader && u.PublisherID != nil {
		return &ValidationError{Field: "publisher", Message: "readers cannot belong to a publisher"}
	}
	return nil
}

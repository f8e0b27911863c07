// Package account provides use cases for the account lifecycle: registration,
// password changes, and self-service password resets.
package account

import "errors"

// Sentinel errors for account use case operations.
var (
	// ErrUsernameTaken indicates that the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound indicates that the requested user was not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrWrongPassword indicates that the supplied current password did not
	// match the stored hash.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrInvalidResetToken is the single error returned for every reset
	// confirmation failure. Expired, forged, reused tokens and unknown user
	// IDs are deliberately indistinguishable.
	ErrInvalidResetToken = errors.New("reset link is invalid or already used")
)

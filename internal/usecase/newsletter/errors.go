// Package newsletter provides use cases for managing newsletter entities.
// The workflow mirrors articles: journalists and editors write newsletters,
// publisher-attributed ones await editor approval, independent ones go live
// immediately with subscriber notifications.
package newsletter

import "errors"

// Sentinel errors for newsletter use case operations.
var (
	// ErrNewsletterNotFound indicates that the requested newsletter was not found.
	ErrNewsletterNotFound = errors.New("newsletter not found")

	// ErrInvalidNewsletterID indicates that the provided newsletter ID is invalid.
	ErrInvalidNewsletterID = errors.New("invalid newsletter ID")

	// ErrNotAllowed indicates that the acting user is neither the author of
	// the newsletter nor an editor.
	ErrNotAllowed = errors.New("not allowed to modify this newsletter")

	// ErrApprovalRequiresEditor indicates that a non-editor tried to change
	// the editor approval flag.
	ErrApprovalRequiresEditor = errors.New("only editors can change approval")
)

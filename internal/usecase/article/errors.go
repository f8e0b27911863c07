// Package article provides use cases for managing article entities.
// It implements business logic for writing, updating, approving, and querying
// articles, including the publish-as decision and approval notifications.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrNotAllowed indicates that the acting user is neither the author of
	// the article nor an editor.
	ErrNotAllowed = errors.New("not allowed to modify this article")

	// ErrApprovalRequiresEditor indicates that a non-editor tried to change
	// the editor approval flag.
	ErrApprovalRequiresEditor = errors.New("only editors can change approval")
)

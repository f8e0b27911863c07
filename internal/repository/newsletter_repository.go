package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// NewsletterWithAuthor represents a newsletter along with its author's username.
type NewsletterWithAuthor struct {
	Newsletter     *entity.Newsletter
	AuthorUsername string
}

type NewsletterRepository interface {
	// List retrieves all newsletters with their author usernames, ordered by
	// title ascending.
	List(ctx context.Context) ([]NewsletterWithAuthor, error)
	// Get retrieves a newsletter by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Newsletter, error)
	// GetWithAuthor retrieves a newsletter by ID and includes the author's
	// username. Returns (nil, "", nil) if not found.
	GetWithAuthor(ctx context.Context, id int64) (*entity.Newsletter, string, error)
	// Create inserts a newsletter and sets its ID.
	Create(ctx context.Context, newsletter *entity.Newsletter) error
	// Update persists changed fields of an existing newsletter.
	Update(ctx context.Context, newsletter *entity.Newsletter) error
	// Delete removes a newsletter.
	Delete(ctx context.Context, id int64) error

	// ListApprovedByPublishers retrieves approved newsletters whose author is
	// employed by any of the given publishers.
	ListApprovedByPublishers(ctx context.Context, publisherIDs []int64) ([]NewsletterWithAuthor, error)
	// ListIndependentByAuthors retrieves independent newsletters by any of the
	// given authors, regardless of approval state.
	ListIndependentByAuthors(ctx context.Context, authorIDs []int64) ([]NewsletterWithAuthor, error)
}

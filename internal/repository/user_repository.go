package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// Subscriptions holds a reader's current subscription sets as entity IDs.
// The sets carry no ordering significance.
type Subscriptions struct {
	JournalistIDs []int64
	PublisherIDs  []int64
}

type UserRepository interface {
	// Get retrieves a user by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername retrieves a user by username. Returns (nil, nil) if not found.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ListByEmail retrieves every account registered under the given address.
	// Addresses are not unique across accounts.
	ListByEmail(ctx context.Context, email string) ([]*entity.User, error)
	// ListJournalists retrieves all users with the Journalist role, ordered by username.
	ListJournalists(ctx context.Context) ([]*entity.User, error)
	// Create inserts a user and sets its ID.
	Create(ctx context.Context, user *entity.User) error
	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// Delete removes a user; the author's content is removed by cascade.
	Delete(ctx context.Context, id int64) error

	// Subscriptions retrieves the subscription sets of a reader.
	Subscriptions(ctx context.Context, userID int64) (*Subscriptions, error)
	// ReplaceSubscriptions replaces both subscription sets wholesale in a
	// single transaction. Journalist IDs that do not belong to users with the
	// Journalist role, and the reader's own ID, are discarded.
	ReplaceSubscriptions(ctx context.Context, userID int64, subs Subscriptions) error
	// ListPublisherSubscribers retrieves the readers subscribed to a publisher.
	ListPublisherSubscribers(ctx context.Context, publisherID int64) ([]*entity.User, error)
	// ListJournalistSubscribers retrieves the readers subscribed to a journalist.
	ListJournalistSubscribers(ctx context.Context, journalistID int64) ([]*entity.User, error)
}

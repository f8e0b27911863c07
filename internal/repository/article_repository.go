package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// ArticleWithAuthor represents an article along with its author's username.
type ArticleWithAuthor struct {
	Article        *entity.Article
	AuthorUsername string
}

type ArticleRepository interface {
	// List retrieves all articles with their author usernames, ordered by
	// title ascending.
	List(ctx context.Context) ([]ArticleWithAuthor, error)
	// Get retrieves an article by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetWithAuthor retrieves an article by ID and includes the author's
	// username. Returns (nil, "", nil) if not found.
	GetWithAuthor(ctx context.Context, id int64) (*entity.Article, string, error)
	// Create inserts an article and sets its ID.
	Create(ctx context.Context, article *entity.Article) error
	// Update persists changed fields of an existing article.
	Update(ctx context.Context, article *entity.Article) error
	// Delete removes an article.
	Delete(ctx context.Context, id int64) error

	// ListApprovedByPublishers retrieves approved articles whose author is
	// employed by any of the given publishers.
	ListApprovedByPublishers(ctx context.Context, publisherIDs []int64) ([]ArticleWithAuthor, error)
	// ListIndependentByAuthors retrieves independent articles by any of the
	// given authors, regardless of approval state.
	ListIndependentByAuthors(ctx context.Context, authorIDs []int64) ([]ArticleWithAuthor, error)
}

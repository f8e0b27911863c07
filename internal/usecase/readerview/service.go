// Package readerview provides the reader's personalized feed use case.
// The feed combines approved content from subscribed publishers with
// independent content from subscribed journalists.
package readerview

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// ErrReadersOnly indicates that a non-reader requested the reader feed.
var ErrReadersOnly = errors.New("this view is for readers only")

// View is the reader's personalized feed, split the way readers browse it.
//
// Publisher lists carry only editor-approved content from subscribed
// publishers. Journalist lists carry independent content from subscribed
// journalists; approval is irrelevant there.
type View struct {
	PublisherArticles     []repository.ArticleWithAuthor
	PublisherNewsletters  []repository.NewsletterWithAuthor
	JournalistArticles    []repository.ArticleWithAuthor
	JournalistNewsletters []repository.NewsletterWithAuthor
}

// Service assembles reader feeds.
type Service struct {
	Users       repository.UserRepository
	Articles    repository.ArticleRepository
	Newsletters repository.NewsletterRepository
}

// View builds the feed for the acting user.
// Returns ErrReadersOnly when the actor is not a reader.
func (s *Service) View(ctx context.Context, actor *entity.User) (*View, error) {
	if actor.Role != entity.RoleReader {
		return nil, ErrReadersOnly
	}

	subs, err := s.Users.Subscriptions(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}

	view := &View{}

	view.PublisherArticles, err = s.Articles.ListApprovedByPublishers(ctx, subs.PublisherIDs)
	if err != nil {
		return nil, fmt.Errorf("list publisher articles: %w", err)
	}
	view.PublisherNewsletters, err = s.Newsletters.ListApprovedByPublishers(ctx, subs.PublisherIDs)
	if err != nil {
		return nil, fmt.Errorf("list publisher newsletters: %w", err)
	}
	view.JournalistArticles, err = s.Articles.ListIndependentByAuthors(ctx, subs.JournalistIDs)
	if err != nil {
		return nil, fmt.Errorf("list journalist articles: %w", err)
	}
	view.JournalistNewsletters, err = s.Newsletters.ListIndependentByAuthors(ctx, subs.JournalistIDs)
	if err != nil {
		return nil, fmt.Errorf("list journalist newsletters: %w", err)
	}

	return view, nil
}

// Package subscription provides use cases for managing a reader's
// subscriptions to publishers and independent journalists.
package subscription

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// ErrReadersOnly indicates that a non-reader tried to manage subscriptions.
var ErrReadersOnly = errors.New("only readers manage subscriptions")

// Options lists everything a reader can subscribe to.
type Options struct {
	Journalists []*entity.User
	Publishers  []*entity.Publisher
}

// Service provides subscription management use cases.
type Service struct {
	Users      repository.UserRepository
	Publishers repository.PublisherRepository
}

// Options retrieves the journalists and publishers available for subscription.
func (s *Service) Options(ctx context.Context) (*Options, error) {
	journalists, err := s.Users.ListJournalists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journalists: %w", err)
	}
	publishers, err := s.Publishers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return &Options{Journalists: journalists, Publishers: publishers}, nil
}

// Get retrieves the actor's current subscription sets.
// Returns ErrReadersOnly when the actor is not a reader.
func (s *Service) Get(ctx context.Context, actor *entity.User) (*repository.Subscriptions, error) {
	if actor.Role != entity.RoleReader {
		return nil, ErrReadersOnly
	}
	subs, err := s.Users.Subscriptions(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	return subs, nil
}

// Replace replaces both of the actor's subscription sets wholesale.
// An empty set clears the corresponding subscriptions. IDs that do not name a
// journalist are dropped silently, as is the actor's own ID.
// Returns ErrReadersOnly when the actor is not a reader.
func (s *Service) Replace(ctx context.Context, actor *entity.User, subs repository.Subscriptions) error {
	if actor.Role != entity.RoleReader {
		return ErrReadersOnly
	}
	if err := s.Users.ReplaceSubscriptions(ctx, actor.ID, subs); err != nil {
		return fmt.Errorf("replace subscriptions: %w", err)
	}
	metrics.RecordSubscriptionUpdate()
	return nil
}

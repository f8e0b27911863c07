// Package notify provides the publication notification use case.
// It fans out subscriber emails and posts a social announcement when content
// is published independently or approved for a publisher.
//
// Notification failures never fail the publication itself. Every failure is
// collected as a warning so the handler can report it alongside the saved
// content.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/announce"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/repository"
)

// Kind identifies the type of publication being announced.
type Kind string

const (
	KindArticle    Kind = "Article"
	KindNewsletter Kind = "Newsletter"
)

// maxConcurrentEmails bounds the subscriber email fan-out.
const maxConcurrentEmails = 4

// Publication carries the fields of a published item that notifications need.
type Publication struct {
	Kind    Kind
	Title   string
	Content string
}

// Service fans out publication notifications to subscribers and the
// announcement platform.
type Service struct {
	Users      repository.UserRepository
	Publishers repository.PublisherRepository
	Mailer     mailer.Mailer
	Announcer  announce.Announcer
}

// IndependentPublished notifies the journalist's subscribers about a freshly
// published independent item and posts an announcement.
//
// Returns warnings for every notification that failed. The publication itself
// is already saved, so nothing here returns an error.
func (s *Service) IndependentPublished(ctx context.Context, pub Publication, author *entity.User) []string {
	var warnings []string

	subject := fmt.Sprintf("New %s from %s: %s", pub.Kind, author.Username, pub.Title)

	subscribers, err := s.Users.ListJournalistSubscribers(ctx, author.ID)
	if err != nil {
		slog.Error("listing journalist subscribers failed",
			slog.Int64("journalist_id", author.ID),
			slog.Any("error", err))
		warnings = append(warnings, fmt.Sprintf("could not load subscribers: %v", err))
	} else {
		body := fmt.Sprintf("%s\n\nBy %s (independent)\n\n%s", pub.Title, author.Username, pub.Content)
		warnings = append(warnings, s.sendToSubscribers(ctx, subscribers, subject, body)...)
	}

	announcement := fmt.Sprintf("New %s from %s: %s\n%s", pub.Kind, author.Username, pub.Title, pub.Content)
	warnings = append(warnings, s.post(ctx, announcement)...)

	return warnings
}

// Approved notifies the publisher's subscribers that an item was approved by
// an editor and posts an announcement attributed to the publisher.
//
// Authors without a publisher get no approval notifications; the approval
// itself still stands.
func (s *Service) Approved(ctx context.Context, pub Publication, author *entity.User) []string {
	if author.PublisherID == nil {
		slog.Info("approved content has no publisher, skipping notifications",
			slog.Int64("author_id", author.ID))
		return nil
	}

	publisher, err := s.Publishers.Get(ctx, *author.PublisherID)
	if err != nil {
		slog.Error("loading publisher failed",
			slog.Int64("publisher_id", *author.PublisherID),
			slog.Any("error", err))
		return []string{fmt.Sprintf("could not load publisher: %v", err)}
	}
	if publisher == nil {
		slog.Warn("author references missing publisher, skipping notifications",
			slog.Int64("author_id", author.ID),
			slog.Int64("publisher_id", *author.PublisherID))
		return nil
	}

	var warnings []string

	subject := fmt.Sprintf("New %s Published: %s", pub.Kind, pub.Title)

	subscribers, err := s.Users.ListPublisherSubscribers(ctx, publisher.ID)
	if err != nil {
		slog.Error("listing publisher subscribers failed",
			slog.Int64("publisher_id", publisher.ID),
			slog.Any("error", err))
		warnings = append(warnings, fmt.Sprintf("could not load subscribers: %v", err))
	} else {
		body := fmt.Sprintf("%s\n\nBy %s, %s\n\n%s", pub.Title, author.Username, publisher.Name, pub.Content)
		warnings = append(warnings, s.sendToSubscribers(ctx, subscribers, subject, body)...)
	}

	// The approval announcement wording differs between the two kinds.
	var announcement string
	if pub.Kind == KindArticle {
		announcement = fmt.Sprintf("New article from %s: %s\n%s", publisher.Name, pub.Title, pub.Content)
	} else {
		announcement = fmt.Sprintf("New Newsletter from %s: %s\n%s", publisher.Name, pub.Title, pub.Content)
	}
	warnings = append(warnings, s.post(ctx, announcement)...)

	return warnings
}

// sendToSubscribers emails every subscriber that has an address, with bounded
// concurrency. Subscribers without an email address are skipped silently.
func (s *Service) sendToSubscribers(ctx context.Context, subscribers []*entity.User, subject, body string) []string {
	var (
		mu       sync.Mutex
		warnings []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmails)

	for _, subscriber := range subscribers {
		if subscriber.Email == "" {
			continue
		}
		sub := subscriber
		g.Go(func() error {
			start := time.Now()
			err := s.Mailer.Send(gctx, mailer.Message{
				To:      sub.Email,
				Subject: subject,
				Body:    body,
			})
			observeDuration(channelEmail, start)
			recordSent(channelEmail, err)
			if err != nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("failed to email %s: %v", sub.Email, err))
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return warnings
}

// post sends the announcement and converts any failure into a warning.
func (s *Service) post(ctx context.Context, text string) []string {
	start := time.Now()
	err := s.Announcer.Announce(ctx, text)
	observeDuration(channelX, start)
	recordSent(channelX, err)
	if err != nil {
		slog.Warn("announcement failed", slog.Any("error", err))
		return []string{fmt.Sprintf("failed to post announcement: %v", err)}
	}
	return nil
}

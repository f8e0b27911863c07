package subscription_test

import (
	"context"
	"errors"
	"testing"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/subscription"
)

/* ───────── stubs ───────── */

type stubUsers struct {
	journalists []*entity.User
	subs        map[int64]*repository.Subscriptions
	replaced    map[int64]repository.Subscriptions
	err         error
}

func (s *stubUsers) Get(_ context.Context, _ int64) (*entity.User, error) { return nil, s.err }
func (s *stubUsers) GetByUsername(_ context.Context, _ string) (*entity.User, error) {
	return nil, s.err
}
func (s *stubUsers) ListByEmail(_ context.Context, _ string) ([]*entity.User, error) {
	return nil, s.err
}
func (s *stubUsers) ListJournalists(_ context.Context) ([]*entity.User, error) {
	return s.journalists, s.err
}
func (s *stubUsers) Create(_ context.Context, _ *entity.User) error { return s.err }
func (s *stubUsers) UpdatePassword(_ context.Context, _ int64, _ string) error {
	return s.err
}
func (s *stubUsers) Delete(_ context.Context, _ int64) error { return s.err }
func (s *stubUsers) Subscriptions(_ context.Context, userID int64) (*repository.Subscriptions, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subs[userID], nil
}
func (s *stubUsers) ReplaceSubscriptions(_ context.Context, userID int64, subs repository.Subscriptions) error {
	if s.err != nil {
		return s.err
	}
	if s.replaced == nil {
		s.replaced = map[int64]repository.Subscriptions{}
	}
	s.replaced[userID] = subs
	return nil
}
func (s *stubUsers) ListPublisherSubscribers(_ context.Context, _ int64) ([]*entity.User, error) {
	return nil, s.err
}
func (s *stubUsers) ListJournalistSubscribers(_ context.Context, _ int64) ([]*entity.User, error) {
	return nil, s.err
}

type stubPublishers struct {
	publishers []*entity.Publisher
	err        error
}

func (s *stubPublishers) Get(_ context.Context, _ int64) (*entity.Publisher, error) {
	return nil, s.err
}
func (s *stubPublishers) GetByName(_ context.Context, _ string) (*entity.Publisher, error) {
	return nil, s.err
}
func (s *stubPublishers) List(_ context.Context) ([]*entity.Publisher, error) {
	return s.publishers, s.err
}
func (s *stubPublishers) Create(_ context.Context, _ *entity.Publisher) error { return s.err }
func (s *stubPublishers) Delete(_ context.Context, _ int64) error             { return s.err }

/* ───────── tests ───────── */

func TestService_Options(t *testing.T) {
	users := &stubUsers{journalists: []*entity.User{
		{ID: 4, Username: "sue", Role: entity.RoleJournalist},
	}}
	publishers := &stubPublishers{publishers: []*entity.Publisher{
		{ID: 2, Name: "Daily Planet"},
	}}
	svc := &subscription.Service{Users: users, Publishers: publishers}

	opts, err := svc.Options(context.Background())
	if err != nil {
		t.Fatalf("Options err=%v", err)
	}
	if len(opts.Journalists) != 1 || opts.Journalists[0].Username != "sue" {
		t.Errorf("unexpected journalists %+v", opts.Journalists)
	}
	if len(opts.Publishers) != 1 || opts.Publishers[0].Name != "Daily Planet" {
		t.Errorf("unexpected publishers %+v", opts.Publishers)
	}
}

func TestService_Replace(t *testing.T) {
	users := &stubUsers{}
	svc := &subscription.Service{Users: users, Publishers: &stubPublishers{}}

	reader := &entity.User{ID: 9, Role: entity.RoleReader}
	subs := repository.Subscriptions{JournalistIDs: []int64{4}, PublisherIDs: []int64{2}}
	if err := svc.Replace(context.Background(), reader, subs); err != nil {
		t.Fatalf("Replace err=%v", err)
	}
	got := users.replaced[9]
	if len(got.JournalistIDs) != 1 || got.JournalistIDs[0] != 4 {
		t.Errorf("unexpected journalist subscriptions %+v", got)
	}

	// Wholesale semantics: an empty replacement clears everything.
	if err := svc.Replace(context.Background(), reader, repository.Subscriptions{}); err != nil {
		t.Fatalf("Replace err=%v", err)
	}
	got = users.replaced[9]
	if len(got.JournalistIDs) != 0 || len(got.PublisherIDs) != 0 {
		t.Errorf("expected cleared subscriptions, got %+v", got)
	}
}

func TestService_ReadersOnly(t *testing.T) {
	svc := &subscription.Service{Users: &stubUsers{}, Publishers: &stubPublishers{}}

	journalist := &entity.User{ID: 4, Role: entity.RoleJournalist}
	if err := svc.Replace(context.Background(), journalist, repository.Subscriptions{}); !errors.Is(err, subscription.ErrReadersOnly) {
		t.Fatalf("expected ErrReadersOnly, got %v", err)
	}
	if _, err := svc.Get(context.Background(), journalist); !errors.Is(err, subscription.ErrReadersOnly) {
		t.Fatalf("expected ErrReadersOnly, got %v", err)
	}
}

package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/account"
)

/* ───────── stubs ───────── */

type stubUsers struct {
	byID       map[int64]*entity.User
	byUsername map[string]*entity.User
	nextID     int64
	passwords  map[int64]string
	err        error
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byID:       map[int64]*entity.User{},
		byUsername: map[string]*entity.User{},
		nextID:     1,
		passwords:  map[int64]string{},
	}
}

func (s *stubUsers) add(u *entity.User) *entity.User {
	if u.ID == 0 {
		u.ID = s.nextID
		s.nextID++
	}
	s.byID[u.ID] = u
	s.byUsername[u.Username] = u
	return u
}

func (s *stubUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	return s.byID[id], s.err
}
func (s *stubUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.byUsername[username], s.err
}
func (s *stubUsers) ListByEmail(_ context.Context, email string) ([]*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.User
	for _, u := range s.byID {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}
func (s *stubUsers) ListJournalists(_ context.Context) ([]*entity.User, error) { return nil, s.err }
func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if s.err != nil {
		return s.err
	}
	s.add(u)
	return nil
}
func (s *stubUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	if s.err != nil {
		return s.err
	}
	s.passwords[id] = hash
	if u := s.byID[id]; u != nil {
		u.PasswordHash = hash
	}
	return nil
}
func (s *stubUsers) Delete(_ context.Context, _ int64) error { return s.err }
func (s *stubUsers) Subscriptions(_ context.Context, _ int64) (*repository.Subscriptions, error) {
	return nil, s.err
}
func (s *stubUsers) ReplaceSubscriptions(_ context.Context, _ int64, _ repository.Subscriptions) error {
	return s.err
}
func (s *stubUsers) ListPublisherSubscribers(_ context.Context, _ int64) ([]*entity.User, error) {
	return nil, s.err
}
func (s *stubUsers) ListJournalistSubscribers(_ context.Context, _ int64) ([]*entity.User, error) {
	return nil, s.err
}

type stubPublishers struct {
	byName map[string]*entity.Publisher
	nextID int64
	err    error
}

func newStubPublishers() *stubPublishers {
	return &stubPublishers{byName: map[string]*entity.Publisher{}, nextID: 1}
}

func (s *stubPublishers) Get(_ context.Context, id int64) (*entity.Publisher, error) {
	for _, p := range s.byName {
		if p.ID == id {
			return p, s.err
		}
	}
	return nil, s.err
}
func (s *stubPublishers) GetByName(_ context.Context, name string) (*entity.Publisher, error) {
	return s.byName[name], s.err
}
func (s *stubPublishers) List(_ context.Context) ([]*entity.Publisher, error) { return nil, s.err }
func (s *stubPublishers) Create(_ context.Context, p *entity.Publisher) error {
	if s.err != nil {
		return s.err
	}
	p.ID = s.nextID
	s.nextID++
	s.byName[p.Name] = p
	return nil
}
func (s *stubPublishers) Delete(_ context.Context, _ int64) error { return s.err }

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newService(users *stubUsers, pubs *stubPublishers, mail *recordingMailer) *account.Service {
	return &account.Service{
		Users:       users,
		Publishers:  pubs,
		Mailer:      mail,
		Policy:      account.PasswordPolicy{MinLength: 8, WeakPasswords: []string{"password", "12345678"}},
		ResetSecret: []byte("test-secret"),
		ResetTTL:    time.Hour,
		ResetURL:    "https://news.example.com/auth/password_reset/confirm",
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

/* ───────── Register ───────── */

func TestService_Register_Reader(t *testing.T) {
	users := newStubUsers()
	svc := newService(users, newStubPublishers(), &recordingMailer{})

	user, err := svc.Register(context.Background(), account.RegisterInput{
		Username:        "rita",
		Email:           "rita@example.com",
		Password:        "orange-sparrow",
		PasswordConfirm: "orange-sparrow",
		Role:            "Reader",
		PublisherName:   "should be ignored",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if user.Role != entity.RoleReader {
		t.Errorf("role=%q", user.Role)
	}
	if user.PublisherID != nil {
		t.Error("readers must never be attached to a publisher")
	}
	if user.PasswordHash == "" || user.PasswordHash == "orange-sparrow" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("orange-sparrow")) != nil {
		t.Error("stored hash does not verify the password")
	}
}

func TestService_Register_JournalistCreatesPublisher(t *testing.T) {
	users := newStubUsers()
	pubs := newStubPublishers()
	svc := newService(users, pubs, &recordingMailer{})

	user, err := svc.Register(context.Background(), account.RegisterInput{
		Username:        "sue",
		Email:           "sue@example.com",
		Password:        "orange-sparrow",
		PasswordConfirm: "orange-sparrow",
		Role:            "Journalist",
		PublisherName:   "Daily Planet",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	pub := pubs.byName["Daily Planet"]
	if pub == nil {
		t.Fatal("publisher was not created")
	}
	if user.PublisherID == nil || *user.PublisherID != pub.ID {
		t.Errorf("user publisher=%v, want %d", user.PublisherID, pub.ID)
	}

	// A second registration with the same publisher name reuses it.
	other, err := svc.Register(context.Background(), account.RegisterInput{
		Username:        "ed",
		Email:           "ed@example.com",
		Password:        "orange-sparrow",
		PasswordConfirm: "orange-sparrow",
		Role:            "Editor",
		PublisherName:   "Daily Planet",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if *other.PublisherID != pub.ID {
		t.Errorf("publisher not reused: got %d, want %d", *other.PublisherID, pub.ID)
	}
	if pubs.nextID != 2 {
		t.Errorf("expected exactly one publisher, nextID=%d", pubs.nextID)
	}
}

func TestService_Register_JournalistRequiresPublisherName(t *testing.T) {
	svc := newService(newStubUsers(), newStubPublishers(), &recordingMailer{})

	_, err := svc.Register(context.Background(), account.RegisterInput{
		Username:        "sue",
		Email:           "sue@example.com",
		Password:        "orange-sparrow",
		PasswordConfirm: "orange-sparrow",
		Role:            "Journalist",
	})
	var validationErr *entity.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err=%v, want validation error", err)
	}
	if validationErr.Field != "publisher_name" {
		t.Errorf("field=%q", validationErr.Field)
	}
}

func TestService_Register_Rejections(t *testing.T) {
	users := newStubUsers()
	users.add(&entity.User{Username: "taken", Email: "t@example.com", Role: entity.RoleReader})
	svc := newService(users, newStubPublishers(), &recordingMailer{})

	base := account.RegisterInput{
		Username:        "rita",
		Email:           "rita@example.com",
		Password:        "orange-sparrow",
		PasswordConfirm: "orange-sparrow",
		Role:            "Reader",
	}

	mismatch := base
	mismatch.PasswordConfirm = "something-else"
	if _, err := svc.Register(context.Background(), mismatch); err == nil {
		t.Error("mismatched confirmation must be rejected")
	}

	short := base
	short.Password, short.PasswordConfirm = "tiny", "tiny"
	if _, err := svc.Register(context.Background(), short); err == nil {
		t.Error("short password must be rejected")
	}

	weak := base
	weak.Password, weak.PasswordConfirm = "PASSWORD", "PASSWORD"
	if _, err := svc.Register(context.Background(), weak); err == nil {
		t.Error("weak password must be rejected regardless of case")
	}

	badRole := base
	badRole.Role = "Admin"
	if _, err := svc.Register(context.Background(), badRole); !errors.Is(err, entity.ErrInvalidRole) {
		t.Errorf("err=%v, want ErrInvalidRole", err)
	}

	dup := base
	dup.Username = "taken"
	if _, err := svc.Register(context.Background(), dup); !errors.Is(err, account.ErrUsernameTaken) {
		t.Errorf("err=%v, want ErrUsernameTaken", err)
	}
}

/* ───────── ChangePassword ───────── */

func TestService_ChangePassword(t *testing.T) {
	users := newStubUsers()
	actor := users.add(&entity.User{
		Username:     "rita",
		Email:        "rita@example.com",
		Role:         entity.RoleReader,
		PasswordHash: mustHash(t, "orange-sparrow"),
	})
	svc := newService(users, newStubPublishers(), &recordingMailer{})

	if err := svc.ChangePassword(context.Background(), actor, "wrong-guess!", "violet-heron-9"); !errors.Is(err, account.ErrWrongPassword) {
		t.Errorf("err=%v, want ErrWrongPassword", err)
	}
	if len(users.passwords) != 0 {
		t.Fatal("password must not change on a failed verification")
	}

	if err := svc.ChangePassword(context.Background(), actor, "orange-sparrow", "violet-heron-9"); err != nil {
		t.Fatalf("ChangePassword err=%v", err)
	}
	hash, ok := users.passwords[actor.ID]
	if !ok {
		t.Fatal("new hash was not persisted")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("violet-heron-9")) != nil {
		t.Error("persisted hash does not verify the new password")
	}
}

/* ───────── Password reset ───────── */

func TestService_RequestPasswordReset(t *testing.T) {
	users := newStubUsers()
	users.add(&entity.User{
		Username:     "rita",
		Email:        "shared@example.com",
		Role:         entity.RoleReader,
		PasswordHash: mustHash(t, "orange-sparrow"),
	})
	users.add(&entity.User{
		Username:     "remy",
		Email:        "shared@example.com",
		Role:         entity.RoleReader,
		PasswordHash: mustHash(t, "violet-heron-9"),
	})
	mail := &recordingMailer{}
	svc := newService(users, newStubPublishers(), mail)

	if err := svc.RequestPasswordReset(context.Background(), "shared@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset err=%v", err)
	}
	if len(mail.sent) != 2 {
		t.Fatalf("sent %d emails, want one per matching account", len(mail.sent))
	}
	for _, msg := range mail.sent {
		if msg.Subject != "Password Reset Requested" {
			t.Errorf("subject=%q", msg.Subject)
		}
		if !strings.Contains(msg.Body, "https://news.example.com/auth/password_reset/confirm?uid=") {
			t.Errorf("body missing reset link: %q", msg.Body)
		}
	}
}

func TestService_RequestPasswordReset_UnknownAddressIsSilent(t *testing.T) {
	mail := &recordingMailer{}
	svc := newService(newStubUsers(), newStubPublishers(), mail)

	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown address must not error, got %v", err)
	}
	if len(mail.sent) != 0 {
		t.Errorf("sent %d emails, want none", len(mail.sent))
	}
}

func TestService_ConfirmPasswordReset(t *testing.T) {
	users := newStubUsers()
	user := users.add(&entity.User{
		Username:     "rita",
		Email:        "rita@example.com",
		Role:         entity.RoleReader,
		PasswordHash: mustHash(t, "orange-sparrow"),
	})
	mail := &recordingMailer{}
	svc := newService(users, newStubPublishers(), mail)

	if err := svc.RequestPasswordReset(context.Background(), "rita@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset err=%v", err)
	}
	token := extractToken(t, mail.sent[0].Body)

	if err := svc.ConfirmPasswordReset(context.Background(), user.ID, token, "violet-heron-9"); err != nil {
		t.Fatalf("ConfirmPasswordReset err=%v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("violet-heron-9")) != nil {
		t.Error("new password does not verify after reset")
	}

	// The token was keyed on the old hash, so a second use must fail.
	err := svc.ConfirmPasswordReset(context.Background(), user.ID, token, "amber-finch-22")
	if !errors.Is(err, account.ErrInvalidResetToken) {
		t.Errorf("err=%v, want ErrInvalidResetToken on reuse", err)
	}
}

func TestService_ConfirmPasswordReset_Rejections(t *testing.T) {
	users := newStubUsers()
	user := users.add(&entity.User{
		Username:     "rita",
		Email:        "rita@example.com",
		Role:         entity.RoleReader,
		PasswordHash: mustHash(t, "orange-sparrow"),
	})
	mail := &recordingMailer{}
	svc := newService(users, newStubPublishers(), mail)

	if err := svc.RequestPasswordReset(context.Background(), "rita@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset err=%v", err)
	}
	token := extractToken(t, mail.sent[0].Body)

	if err := svc.ConfirmPasswordReset(context.Background(), 999, token, "violet-heron-9"); !errors.Is(err, account.ErrInvalidResetToken) {
		t.Errorf("unknown uid: err=%v, want ErrInvalidResetToken", err)
	}
	if err := svc.ConfirmPasswordReset(context.Background(), user.ID, "not-a-token", "violet-heron-9"); !errors.Is(err, account.ErrInvalidResetToken) {
		t.Errorf("garbage token: err=%v, want ErrInvalidResetToken", err)
	}
	if err := svc.ConfirmPasswordReset(context.Background(), user.ID, token, "tiny"); err == nil {
		t.Error("weak replacement password must be rejected")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("orange-sparrow")) != nil {
		t.Error("password must be unchanged after rejected confirmations")
	}
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	if i < 0 {
		t.Fatalf("no token in body %q", body)
	}
	token := body[i+len("token="):]
	if j := strings.IndexAny(token, " \n"); j >= 0 {
		token = token[:j]
	}
	return token
}

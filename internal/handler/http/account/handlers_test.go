package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/account"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/repository"
	accUC "newsdesk/internal/usecase/account"
)

/* ───────── stubs ───────── */

type stubUsers struct {
	byID       map[int64]*entity.User
	byUsername map[string]*entity.User
	nextID     int64
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[int64]*entity.User{}, byUsername: map[string]*entity.User{}, nextID: 1}
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
	return s.byID[id], nil
}
func (s *stubUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.byUsername[username], nil
}
func (s *stubUsers) ListByEmail(_ context.Context, email string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.byID {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}
func (s *stubUsers) ListJournalists(_ context.Context) ([]*entity.User, error) { return nil, nil }
func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	s.add(u)
	return nil
}
func (s *stubUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	if u := s.byID[id]; u != nil {
		u.PasswordHash = hash
	}
	return nil
}
func (s *stubUsers) Delete(_ context.Context, _ int64) error { return nil }
func (s *stubUsers) Subscriptions(_ context.Context, _ int64) (*repository.Subscriptions, error) {
	return nil, nil
}
func (s *stubUsers) ReplaceSubscriptions(_ context.Context, _ int64, _ repository.Subscriptions) error {
	return nil
}
func (s *stubUsers) ListPublisherSubscribers(_ context.Context, _ int64) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) ListJournalistSubscribers(_ context.Context, _ int64) ([]*entity.User, error) {
	return nil, nil
}

type stubPublishers struct {
	byName map[string]*entity.Publisher
	nextID int64
}

func (s *stubPublishers) Get(_ context.Context, _ int64) (*entity.Publisher, error) {
	return nil, nil
}
func (s *stubPublishers) GetByName(_ context.Context, name string) (*entity.Publisher, error) {
	return s.byName[name], nil
}
func (s *stubPublishers) List(_ context.Context) ([]*entity.Publisher, error) { return nil, nil }
func (s *stubPublishers) Create(_ context.Context, p *entity.Publisher) error {
	p.ID = s.nextID
	s.nextID++
	s.byName[p.Name] = p
	return nil
}
func (s *stubPublishers) Delete(_ context.Context, _ int64) error { return nil }

type recordingMailer struct{ sent []mailer.Message }

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newService(users *stubUsers) *accUC.Service {
	return &accUC.Service{
		Users:       users,
		Publishers:  &stubPublishers{byName: map[string]*entity.Publisher{}, nextID: 1},
		Mailer:      &recordingMailer{},
		Policy:      accUC.PasswordPolicy{MinLength: 8, WeakPasswords: []string{"password"}},
		ResetSecret: []byte("test-secret"),
		ResetURL:    "https://news.example.com/auth/password_reset/confirm",
	}
}

func withActor(r *http.Request, user *entity.User) *http.Request {
	return r.WithContext(auth.WithUser(r.Context(), user))
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

/* ───────── handlers ───────── */

func TestRegisterHandler(t *testing.T) {
	users := newStubUsers()
	handler := account.RegisterHandler{Svc: newService(users)}

	body := `{"username":"rita","email":"rita@example.com","password":"correct horse battery",
		"password_confirm":"correct horse battery","role":"Reader"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 1 || resp.Username != "rita" || resp.Role != "Reader" {
		t.Errorf("resp=%+v", resp)
	}
	if users.byUsername["rita"] == nil {
		t.Error("user not persisted")
	}
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	users := newStubUsers()
	users.add(&entity.User{Username: "rita", Email: "rita@example.com", Role: entity.RoleReader})
	handler := account.RegisterHandler{Svc: newService(users)}

	body := `{"username":"rita","email":"rita@example.com","password":"correct horse battery",
		"password_confirm":"correct horse battery","role":"Reader"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Errorf("status=%d, want 409", rec.Code)
	}
}

func TestRegisterHandler_PasswordMismatch(t *testing.T) {
	handler := account.RegisterHandler{Svc: newService(newStubUsers())}

	body := `{"username":"rita","email":"rita@example.com","password":"correct horse battery",
		"password_confirm":"different entirely","role":"Reader"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status=%d, want 400", rec.Code)
	}
}

func TestChangePasswordHandler(t *testing.T) {
	users := newStubUsers()
	actor := users.add(&entity.User{
		Username:     "rita",
		Email:        "rita@example.com",
		PasswordHash: mustHash(t, "old password 1"),
		Role:         entity.RoleReader,
	})
	handler := account.ChangePasswordHandler{Svc: newService(users)}

	body := `{"old_password":"old password 1","new_password":"brand new password 2"}`
	req := withActor(httptest.NewRequest(http.MethodPost, "/auth/change_password", strings.NewReader(body)), actor)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", rec.Code, rec.Body.String())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte("brand new password 2")); err != nil {
		t.Error("new password does not verify")
	}
}

func TestChangePasswordHandler_WrongOldPassword(t *testing.T) {
	users := newStubUsers()
	actor := users.add(&entity.User{
		Username:     "rita",
		PasswordHash: mustHash(t, "old password 1"),
		Role:         entity.RoleReader,
	})
	handler := account.ChangePasswordHandler{Svc: newService(users)}

	body := `{"old_password":"not the password","new_password":"brand new password 2"}`
	req := withActor(httptest.NewRequest(http.MethodPost, "/auth/change_password", strings.NewReader(body)), actor)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status=%d, want 403", rec.Code)
	}
}

func TestChangePasswordHandler_NoActor(t *testing.T) {
	handler := account.ChangePasswordHandler{Svc: newService(newStubUsers())}

	body := `{"old_password":"a","new_password":"b"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/change_password", strings.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status=%d, want 401", rec.Code)
	}
}

func TestResetRequestHandler_UniformResponse(t *testing.T) {
	users := newStubUsers()
	users.add(&entity.User{
		Username:     "rita",
		Email:        "rita@example.com",
		PasswordHash: mustHash(t, "old password 1"),
		Role:         entity.RoleReader,
	})
	svc := newService(users)
	sink := svc.Mailer.(*recordingMailer)
	handler := account.ResetRequestHandler{Svc: svc}

	for _, email := range []string{"rita@example.com", "nobody@example.com"} {
		body := `{"email":"` + email + `"}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/password_reset", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("email=%s status=%d", email, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "reset links have been emailed") {
			t.Errorf("email=%s body=%s", email, rec.Body.String())
		}
	}
	if len(sink.sent) != 1 {
		t.Errorf("sent=%d, want 1", len(sink.sent))
	}
}

func TestResetConfirmHandler_BadToken(t *testing.T) {
	users := newStubUsers()
	users.add(&entity.User{
		Username:     "rita",
		Email:        "rita@example.com",
		PasswordHash: mustHash(t, "old password 1"),
		Role:         entity.RoleReader,
	})
	handler := account.ResetConfirmHandler{Svc: newService(users)}

	body := `{"uid":1,"token":"not-a-token","new_password":"brand new password 2"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/password_reset/confirm", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status=%d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid or already used") {
		t.Errorf("body=%s", rec.Body.String())
	}
}

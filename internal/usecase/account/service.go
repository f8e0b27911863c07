package account

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

const resetTokenPurpose = "password_reset"

// DefaultResetTTL bounds how long a password reset link stays valid.
const DefaultResetTTL = 24 * time.Hour

// PasswordPolicy holds the requirements every new password must satisfy.
type PasswordPolicy struct {
	MinLength     int
	WeakPasswords []string
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
	// PublisherName is required for Editors and Journalists and ignored
	// for Readers. The publisher is created on first use.
	PublisherName string
}

// Service implements the account lifecycle use cases.
type Service struct {
	Users      repository.UserRepository
	Publishers repository.PublisherRepository
	Mailer     mailer.Mailer
	Policy     PasswordPolicy
	// ResetSecret signs password reset tokens together with the user's
	// current password hash, so a completed reset invalidates the token.
	ResetSecret []byte
	ResetTTL    time.Duration
	// ResetURL is the absolute confirmation URL included in reset emails.
	ResetURL string
}

// Register creates a new account. Editors and journalists must name their
// publisher, which is looked up by exact name or created. Readers never
// belong to a publisher.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Password != in.PasswordConfirm {
		return nil, &entity.ValidationError{Field: "password_confirm", Message: "does not match"}
	}
	if err := s.validatePassword(in.Password); err != nil {
		return nil, err
	}

	role := entity.Role(in.Role)
	if !role.IsValid() {
		return nil, entity.ErrInvalidRole
	}
	if role != entity.RoleReader && strings.TrimSpace(in.PublisherName) == "" {
		return nil, &entity.ValidationError{Field: "publisher_name", Message: "is required for this role"}
	}

	user := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Role:     role,
	}
	if role != entity.RoleReader {
		pub, err := s.getOrCreatePublisher(ctx, in.PublisherName)
		if err != nil {
			return nil, err
		}
		user.PublisherID = &pub.ID
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	metrics.RecordRegistration(string(user.Role))
	slog.Info("user registered",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))
	return user, nil
}

// ChangePassword replaces the actor's password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, actor *entity.User, oldPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ChangePassword: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, actor.ID, string(hash)); err != nil {
		return fmt.Errorf("ChangePassword: %w", err)
	}
	slog.Info("password changed", slog.String("username", actor.Username))
	return nil
}

// RequestPasswordReset emails a reset link to every account registered under
// the address. It reports success whether or not any account matched, so the
// endpoint does not disclose which addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := entity.ValidateEmail(email); err != nil {
		return err
	}
	users, err := s.Users.ListByEmail(ctx, email)
	if err != nil {
		// Logged, not surfaced. The caller sees the uniform outcome.
		slog.Error("password reset lookup failed", slog.String("error", err.Error()))
		return nil
	}
	for _, user := range users {
		token, err := s.resetToken(user)
		if err != nil {
			slog.Error("password reset token generation failed",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
			continue
		}
		msg := mailer.Message{
			To:      user.Email,
			Subject: "Password Reset Requested",
			Body: fmt.Sprintf("Hello %s,\n\nA password reset was requested for your account.\n\n%s\n\nIf you did not request this, you can ignore this email.",
				user.Username, s.resetLink(user.ID, token)),
		}
		if err := s.Mailer.Send(ctx, msg); err != nil {
			slog.Error("password reset email failed",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// ConfirmPasswordReset validates a reset token and sets the new password.
// Every failure mode maps to the same ErrInvalidResetToken.
func (s *Service) ConfirmPasswordReset(ctx context.Context, userID int64, token, newPassword string) error {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("ConfirmPasswordReset: %w", err)
	}
	if user == nil {
		return ErrInvalidResetToken
	}
	if err := s.verifyResetToken(user, token); err != nil {
		return ErrInvalidResetToken
	}
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ConfirmPasswordReset: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("ConfirmPasswordReset: %w", err)
	}
	slog.Info("password reset completed", slog.String("username", user.Username))
	return nil
}

func (s *Service) validatePassword(password string) error {
	minLength := s.Policy.MinLength
	if minLength == 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", minLength),
		}
	}
	for _, weak := range s.Policy.WeakPasswords {
		if strings.EqualFold(password, weak) {
			return &entity.ValidationError{Field: "password", Message: "is too common"}
		}
	}
	return nil
}

func (s *Service) getOrCreatePublisher(ctx context.Context, name string) (*entity.Publisher, error) {
	pub, err := s.Publishers.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getOrCreatePublisher: %w", err)
	}
	if pub != nil {
		return pub, nil
	}
	pub = &entity.Publisher{Name: name}
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	if err := s.Publishers.Create(ctx, pub); err != nil {
		return nil, fmt.Errorf("getOrCreatePublisher: %w", err)
	}
	slog.Info("publisher created", slog.String("name", pub.Name))
	return pub, nil
}

// resetTokenKey ties the signature to the user's current password hash, so a
// token stops verifying the moment the password changes.
func (s *Service) resetTokenKey(user *entity.User) []byte {
	key := make([]byte, 0, len(s.ResetSecret)+len(user.PasswordHash))
	key = append(key, s.ResetSecret...)
	key = append(key, user.PasswordHash...)
	return key
}

func (s *Service) resetToken(user *entity.User) (string, error) {
	ttl := s.ResetTTL
	if ttl == 0 {
		ttl = DefaultResetTTL
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(user.ID, 10),
		"purpose": resetTokenPurpose,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetTokenKey(user))
}

func (s *Service) verifyResetToken(user *entity.User, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.resetTokenKey(user), nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetTokenPurpose {
		return ErrInvalidResetToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub != strconv.FormatInt(user.ID, 10) {
		return ErrInvalidResetToken
	}
	return nil
}

func (s *Service) resetLink(userID int64, token string) string {
	base := strings.TrimRight(s.ResetURL, "/")
	if base == "" {
		return fmt.Sprintf("User ID: %d\nToken: %s", userID, token)
	}
	return fmt.Sprintf("%s?uid=%d&token=%s", base, userID, token)
}

package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	authservice "newsdesk/internal/service/auth"
)

// dummyHash is compared against when the username does not exist, so the
// lookup path costs a bcrypt verification either way.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("newsdesk-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// RepositoryAuthProvider authenticates against the user store with bcrypt
// password verification.
type RepositoryAuthProvider struct {
	users             repository.UserRepository
	minPasswordLength int
	weakPasswords     []string
}

// NewRepositoryAuthProvider creates a new repository-backed auth provider.
func NewRepositoryAuthProvider(users repository.UserRepository, minPasswordLength int, weakPasswords []string) *RepositoryAuthProvider {
	return &RepositoryAuthProvider{
		users:             users,
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// Authenticate looks up the username and verifies the password against the
// stored bcrypt hash. Unknown usernames and wrong passwords both return the
// same error.
func (p *RepositoryAuthProvider) Authenticate(ctx context.Context, creds authservice.Credentials) (*entity.User, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("credentials must not be empty")
	}

	user, err := p.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// GetRequirements returns the password requirements.
func (p *RepositoryAuthProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *RepositoryAuthProvider) Name() string {
	return "repository"
}

// Package auth contains the framework-agnostic authentication service.
// HTTP-specific concerns (JWT parsing, role permission checks) live in
// internal/handler/http/auth.
package auth

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider defines the interface for authentication providers.
type AuthProvider interface {
	// Authenticate validates the credentials and returns the matching
	// user. Every failure mode returns an error; callers must not
	// distinguish unknown usernames from wrong passwords.
	Authenticate(ctx context.Context, creds Credentials) (*entity.User, error)

	// GetRequirements returns the credential requirements for this provider.
	GetRequirements() CredentialRequirements

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// Authenticate validates credentials via the configured provider.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	return s.provider.Authenticate(ctx, creds)
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFromContext retrieves the authenticated user stored by Authz.
// Returns nil when the request was not authenticated.
func UserFromContext(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(ctxUser).(*entity.User); ok {
		return user
	}
	return nil
}

// WithUser stores the authenticated user in the context. Exported for
// handler tests.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

// Authz is the authorization middleware.
//
// Authorization logic:
//  1. Public endpoints (health checks, metrics, swagger, registration,
//     login, the reset flow, and read access to published content) pass
//     through without a token.
//  2. Every other request needs a valid bearer JWT. The subject claim is
//     resolved to the current account so handlers always see fresh role
//     and publisher data, and deleted accounts are locked out immediately.
//  3. The role permission table gates methods and paths coarsely; the use
//     cases enforce ownership and approval rights.
func Authz(users repository.UserRepository, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			username, role, err := validateJWT(r.Header.Get("Authorization"), secret)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			checkStart := time.Now()
			allowed := checkRolePermission(entity.Role(role), r.Method, r.URL.Path)
			RecordAuthzCheckDuration(time.Since(checkStart).Seconds())
			if !allowed {
				RecordForbiddenAttempt(role, r.Method)
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				respond.SafeError(w, http.StatusInternalServerError, err)
				return
			}
			if user == nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized: account no longer exists"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func validateJWT(authz string, secret []byte) (string, string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", "", errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return "", "", errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", "", errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", errors.New("invalid role claim")
	}
	return sub, role, nil
}

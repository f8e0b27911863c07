package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsdesk/internal/handler/http/requestid"
	authservice "newsdesk/internal/service/auth"
)

// DefaultTokenExpiry bounds how long an issued login token stays valid
// when no expiry is configured.
const DefaultTokenExpiry = time.Hour

type loginRequest struct {
	Username string `json:"username" example:"sue"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// TokenIssuer signs login tokens.
type TokenIssuer struct {
	Secret []byte
	Expiry time.Duration
}

// Issue creates a signed JWT for the user with the username as subject
// and the role as a custom claim.
func (i TokenIssuer) Issue(username string, role string) (string, error) {
	expiry := i.Expiry
	if expiry == 0 {
		expiry = DefaultTokenExpiry
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(expiry).Unix(),
	})
	return token.SignedString(i.Secret)
}

// TokenHandler creates an HTTP handler that authenticates users and issues
// JWT tokens via the provided AuthService.
//
// @Summary      Obtain a JWT token
// @Description  Authenticates with username and password and issues a JWT token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} tokenResponse "JWT token"
// @Failure      400 {string} string "Invalid request"
// @Failure      401 {string} string "Authentication failed"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      500 {string} string "Token generation failed"
// @Router       /auth/token [post]
func TokenHandler(authService *authservice.AuthService, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		user, err := authService.Authenticate(r.Context(), authservice.Credentials{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		role := string(user.Role)
		signed, err := issuer.Issue(user.Username, role)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest(role, "failure")
			RecordAuthDuration(role, time.Since(start).Seconds())
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("username", user.Username),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(role, "success")
		RecordAuthDuration(role, time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response",
				slog.String("error", err.Error()))
		}
	}
}

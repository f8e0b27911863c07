package auth

import (
	"net/http"
	"strings"
)

// PublicEndpoints defines endpoints that never require authentication,
// for any method.
//
// - /health, /ready, /live: orchestration health checks
// - /metrics: Prometheus scraping
// - /swagger/: API documentation
// - /auth/register, /auth/token: account creation and login
// - /auth/password_reset, /auth/password_reset/confirm: reset flow
//   (the requester has, by definition, no working credentials)
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/auth/register",
	"/auth/token",
	"/auth/password_reset",
	"/auth/password_reset/confirm",
}

// PublicReadEndpoints defines endpoints that are public for read methods
// only. Published content is world-readable; writing it requires a token.
var PublicReadEndpoints = []string{
	"/articles",
	"/articles/",
	"/newsletters",
	"/newsletters/",
}

// IsPublicEndpoint checks if a request may proceed without authentication.
//
// Matching logic:
//   - Endpoints ending with '/' use prefix matching (e.g. /swagger/ matches
//     /swagger/index.html)
//   - Endpoints without '/' require an exact match, a trailing slash, or
//     query params only (/health matches /health?x=1 but not /health/detail)
//   - Read-only public endpoints match for GET, HEAD and OPTIONS only
func IsPublicEndpoint(method, path string) bool {
	if matchesEndpoint(path, PublicEndpoints) {
		return true
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return matchesEndpoint(path, PublicReadEndpoints)
	}
	return false
}

func matchesEndpoint(path string, endpoints []string) bool {
	for _, endpoint := range endpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}

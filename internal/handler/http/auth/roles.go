package auth

import (
	"strings"

	"newsdesk/internal/domain/entity"
)

// Permission defines the allowed operations for a role: the HTTP methods
// the role may use and the path patterns it may reach.
type Permission struct {
	AllowedMethods []string
	// AllowedPaths supports wildcards: "/*" matches everything,
	// "/articles/*" matches /articles and every subpath.
	AllowedPaths []string
}

// RolePermissions maps each role to its coarse endpoint access. Finer
// checks (ownership, approval rights, reader-only views) belong to the
// use cases; this table only keeps roles off endpoints they have no
// business calling at all.
//
// /subscriptions and /api/reader_view are reachable by every role so the
// reader-only use cases can answer non-readers with their own error body.
var RolePermissions = map[entity.Role]Permission{
	entity.RoleReader: {
		AllowedMethods: []string{"GET", "PUT", "POST", "OPTIONS"},
		AllowedPaths: []string{
			"/subscriptions",
			"/api/reader_view",
			"/auth/change_password",
		},
	},
	entity.RoleJournalist: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedPaths: []string{
			"/articles/*",
			"/newsletters/*",
			"/subscriptions",
			"/api/reader_view",
			"/auth/change_password",
		},
	},
	entity.RoleEditor: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedPaths: []string{
			"/articles/*",
			"/newsletters/*",
			"/subscriptions",
			"/api/reader_view",
			"/auth/change_password",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Unknown roles are always denied.
func checkRolePermission(role entity.Role, method, path string) bool {
	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	methodAllowed := false
	for _, allowed := range perm.AllowedMethods {
		if allowed == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
// Patterns ending with "/*" match the prefix itself and every subpath;
// anything else is an exact match.
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}

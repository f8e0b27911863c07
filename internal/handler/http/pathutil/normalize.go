package pathutil

import (
	"strconv"
	"strings"
)

// NormalizePath maps request paths onto route templates so metrics labels
// stay low-cardinality. Numeric path segments become ":id"; query strings
// and trailing slashes are dropped.
//
//	NormalizePath("/articles/123")   // "/articles/:id"
//	NormalizePath("/newsletters/7/") // "/newsletters/:id"
//	NormalizePath("/health?x=1")     // "/health"
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

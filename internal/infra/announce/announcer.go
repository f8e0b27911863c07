// Package announce provides abstraction for posting publication announcements
// to social platforms. It defines the Announcer interface which allows
// different platforms to be used interchangeably through dependency injection.
//
// The package includes an implementation for the X (Twitter) v2 API and a
// no-op announcer for when announcements are disabled.
package announce

import "context"

// Announcer is an interface for posting publication announcements.
// Implementations should handle rate limiting, retries, and error logging internally.
type Announcer interface {
	// Announce posts the given text to the platform.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - text: The announcement text; implementations may truncate it to
	//     fit platform limits
	//
	// Returns:
	//   - error: Non-nil if the post failed after all retry attempts
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent API abuse
	//   - Retry transient failures with backoff
	//   - Respect context cancellation
	Announce(ctx context.Context, text string) error
}

package announce

import "context"

// NoOpAnnouncer is a no-operation implementation of the Announcer interface.
// It is used when announcements are disabled to avoid null checks in the code.
// This follows the Null Object pattern.
type NoOpAnnouncer struct{}

// NewNoOpAnnouncer creates a new NoOpAnnouncer instance.
func NewNoOpAnnouncer() *NoOpAnnouncer {
	return &NoOpAnnouncer{}
}

// Announce does nothing and returns nil immediately.
// This allows announcements to be disabled without changing the code flow.
func (n *NoOpAnnouncer) Announce(ctx context.Context, text string) error {
	return nil
}

package mailer

import "context"

// NoOpMailer is a no-operation implementation of the Mailer interface.
// It is used when email delivery is disabled to avoid null checks in the code.
type NoOpMailer struct{}

// NewNoOpMailer creates a new NoOpMailer instance.
func NewNoOpMailer() *NoOpMailer {
	return &NoOpMailer{}
}

// Send does nothing and returns nil immediately.
func (n *NoOpMailer) Send(ctx context.Context, msg Message) error {
	return nil
}

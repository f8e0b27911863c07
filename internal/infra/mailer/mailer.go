// Package mailer provides abstraction for delivering publication emails to
// subscribers. It defines the Mailer interface which allows SMTP delivery and
// a no-op implementation to be used interchangeably through dependency
// injection.
package mailer

import "context"

// Message is a single plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer is an interface for sending subscriber emails.
// Implementations should handle retries and error logging internally.
type Mailer interface {
	// Send delivers a single message. Returns a non-nil error if delivery
	// failed after all retry attempts.
	Send(ctx context.Context, msg Message) error
}

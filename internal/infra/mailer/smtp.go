package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"newsdesk/internal/resilience/retry"
)

// SMTPConfig contains configuration for SMTP delivery.
// Credentials come from the environment; nothing here is ever hard-coded.
type SMTPConfig struct {
	// Enabled indicates whether email delivery is enabled
	Enabled bool

	// Host and Port locate the SMTP relay
	Host string
	Port int

	// Username and Password authenticate against the relay.
	// Leave both empty for an unauthenticated relay.
	Username string
	Password string

	// From is the sender address on outgoing mail
	From string

	// Timeout is the per-delivery timeout
	Timeout time.Duration
}

// SMTPMailer delivers messages through an SMTP relay using go-mail.
type SMTPMailer struct {
	config SMTPConfig
	client *mail.Client
}

// NewSMTPMailer creates a new SMTPMailer with the specified configuration.
// Returns an error if the relay host or sender address is missing.
func NewSMTPMailer(config SMTPConfig) (*SMTPMailer, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("smtp mailer: missing host")
	}
	if config.From == "" {
		return nil, fmt.Errorf("smtp mailer: missing sender address")
	}
	if config.Port == 0 {
		config.Port = 587
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTimeout(config.Timeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if config.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}

	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp mailer: %w", err)
	}

	return &SMTPMailer{config: config, client: client}, nil
}

// Send delivers the message, retrying transient relay failures with backoff.
// This method implements the Mailer interface.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mailMsg := mail.NewMsg()
	if err := mailMsg.From(m.config.From); err != nil {
		return fmt.Errorf("smtp mailer: invalid sender %q: %w", m.config.From, err)
	}
	if err := mailMsg.To(msg.To); err != nil {
		return fmt.Errorf("smtp mailer: invalid recipient %q: %w", msg.To, err)
	}
	mailMsg.Subject(msg.Subject)
	mailMsg.SetBodyString(mail.TypeTextPlain, msg.Body)

	err := retry.WithBackoff(ctx, retry.MailConfig(), func() error {
		return m.client.DialAndSendWithContext(ctx, mailMsg)
	})
	if err != nil {
		slog.Error("email delivery failed",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.Any("error", err))
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	slog.Info("email delivered",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
	return nil
}

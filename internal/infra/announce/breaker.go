package announce

import (
	"context"

	"newsdesk/internal/resilience/circuitbreaker"
)

// BreakerAnnouncer wraps an Announcer with circuit breaker protection.
// When the platform API keeps failing, the circuit opens and announcements
// are rejected immediately instead of tying up publication requests.
type BreakerAnnouncer struct {
	inner   Announcer
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerAnnouncer wraps the given announcer with the X API circuit breaker.
func NewBreakerAnnouncer(inner Announcer) *BreakerAnnouncer {
	return &BreakerAnnouncer{
		inner:   inner,
		breaker: circuitbreaker.New(circuitbreaker.XAPIConfig()),
	}
}

// NewBreakerAnnouncerWithConfig wraps the given announcer with a custom
// circuit breaker configuration.
func NewBreakerAnnouncerWithConfig(inner Announcer, cfg circuitbreaker.Config) *BreakerAnnouncer {
	return &BreakerAnnouncer{
		inner:   inner,
		breaker: circuitbreaker.New(cfg),
	}
}

// Announce posts through the circuit breaker. If the circuit is open, the
// post is rejected immediately with gobreaker.ErrOpenState.
func (b *BreakerAnnouncer) Announce(ctx context.Context, text string) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.inner.Announce(ctx, text)
	})
	return err
}

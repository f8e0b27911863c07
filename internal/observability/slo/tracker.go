package slo

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Tracker accumulates request outcomes and periodically publishes the SLO
// gauges. Observations reset on every flush, so each gauge reflects the most
// recent window.
type Tracker struct {
	mu        sync.Mutex
	total     int64
	errors    int64
	latencies []float64
}

// defaultTracker feeds the package gauges from the HTTP middleware.
var defaultTracker = &Tracker{}

// Observe records one request outcome on the default tracker.
func Observe(statusCode int, duration time.Duration) {
	defaultTracker.Observe(statusCode, duration)
}

// Start flushes the default tracker at the given interval until the context
// is cancelled.
func Start(ctx context.Context, interval time.Duration) {
	defaultTracker.Start(ctx, interval)
}

// Observe records one request outcome. Server errors (5xx) count against
// availability and the error rate.
func (t *Tracker) Observe(statusCode int, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total++
	if statusCode >= http.StatusInternalServerError {
		t.errors++
	}
	t.latencies = append(t.latencies, duration.Seconds())
}

// Start publishes the gauges at the given interval until the context is
// cancelled.
func (t *Tracker) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Flush()
			}
		}
	}()
}

// Flush computes the window's ratios and percentiles, updates the gauges,
// and resets the window. A window with no requests leaves the gauges alone.
func (t *Tracker) Flush() {
	t.mu.Lock()
	total := t.total
	errors := t.errors
	latencies := t.latencies
	t.total = 0
	t.errors = 0
	t.latencies = nil
	t.mu.Unlock()

	if total == 0 {
		return
	}

	UpdateAvailability(float64(total-errors) / float64(total))
	UpdateErrorRate(float64(errors) / float64(total))

	sort.Float64s(latencies)
	UpdateLatencyP95(percentile(latencies, 0.95))
	UpdateLatencyP99(percentile(latencies, 0.99))
}

// percentile returns the value at quantile q from an ascending sorted slice.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * q)
	return sorted[idx]
}

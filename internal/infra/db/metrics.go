package db

import (
	"context"
	"database/sql"
	"time"

	"newsdesk/internal/observability/metrics"
)

// StartPoolMetrics publishes connection pool gauges at the given interval
// until the context is cancelled.
func StartPoolMetrics(ctx context.Context, db *sql.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := db.Stats()
				metrics.DBConnectionsActive.Set(float64(stats.InUse))
				metrics.DBConnectionsIdle.Set(float64(stats.Idle))
			}
		}
	}()
}

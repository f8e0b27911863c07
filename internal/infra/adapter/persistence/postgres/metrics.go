package postgres

import (
	"time"

	"newsdesk/internal/observability/metrics"
)

// track times a repository operation for the query duration histogram.
// Use as: defer track("article_list")()
func track(operation string) func() {
	start := time.Now()
	return func() {
		metrics.RecordOperationDuration(operation, time.Since(start))
	}
}

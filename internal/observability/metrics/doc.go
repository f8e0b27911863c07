// Package metrics provides Prometheus metrics for publishing activity.
//
// This package centralizes the business metrics:
//   - Publications (articles and newsletters written, approved, deleted)
//   - Registrations by role
//   - Subscription updates
//   - Database query metrics
//
// HTTP request metrics live with the HTTP handler layer; this package only
// covers what the application does, not how it is called.
//
// All metrics are automatically registered with the Prometheus default
// registry and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newsdesk/internal/observability/metrics"
//
//	metrics.RecordPublicationCreated("article", true)
//	metrics.RecordSubscriptionUpdate()
package metrics

// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track publishing activity
var (
	// PublicationsCreatedTotal counts publications written, split by kind
	// (article, newsletter) and attribution (publisher, independent)
	PublicationsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publications_created_total",
			Help: "Total number of publications written",
		},
		[]string{"kind", "attribution"},
	)

	// PublicationsApprovedTotal counts editor approvals by kind
	PublicationsApprovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publications_approved_total",
			Help: "Total number of publications approved by an editor",
		},
		[]string{"kind"},
	)

	// PublicationsDeletedTotal counts deletions by kind
	PublicationsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publications_deleted_total",
			Help: "Total number of publications deleted",
		},
		[]string{"kind"},
	)

	// RegistrationsTotal counts account registrations by role
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of accounts registered",
		},
		[]string{"role"},
	)

	// SubscriptionUpdatesTotal counts wholesale subscription replacements
	SubscriptionUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscription_updates_total",
			Help: "Total number of subscription set replacements",
		},
	)

)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordOperationDuration records the duration of a named database operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

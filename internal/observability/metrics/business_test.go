package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPublicationCreated(t *testing.T) {
	tests := []struct {
		name        string
		kind        string
		independent bool
		attribution string
	}{
		{
			name:        "publisher article",
			kind:        "article",
			independent: false,
			attribution: "publisher",
		},
		{
			name:        "independent article",
			kind:        "article",
			independent: true,
			attribution: "independent",
		},
		{
			name:        "publisher newsletter",
			kind:        "newsletter",
			independent: false,
			attribution: "publisher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(PublicationsCreatedTotal.WithLabelValues(tt.kind, tt.attribution))

			RecordPublicationCreated(tt.kind, tt.independent)

			after := testutil.ToFloat64(PublicationsCreatedTotal.WithLabelValues(tt.kind, tt.attribution))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordPublicationApproved(t *testing.T) {
	before := testutil.ToFloat64(PublicationsApprovedTotal.WithLabelValues("newsletter"))

	RecordPublicationApproved("newsletter")

	after := testutil.ToFloat64(PublicationsApprovedTotal.WithLabelValues("newsletter"))
	assert.Equal(t, before+1, after)
}

func TestRecordRegistration(t *testing.T) {
	for _, role := range []string{"Reader", "Journalist", "Editor"} {
		t.Run(role, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordRegistration(role)
			})
		})
	}
}

func TestRecordOperationDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{
			name:     "fast query",
			duration: 2 * time.Millisecond,
		},
		{
			name:     "slow query",
			duration: 750 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordOperationDuration("list_articles", tt.duration)
			})
		})
	}
}

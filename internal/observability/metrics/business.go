package metrics

// RecordPublicationCreated records a new publication. Kind is "article" or
// "newsletter"; independent selects the attribution label.
func RecordPublicationCreated(kind string, independent bool) {
	attribution := "publisher"
	if independent {
		attribution = "independent"
	}
	PublicationsCreatedTotal.WithLabelValues(kind, attribution).Inc()
}

// RecordPublicationApproved records an editor approval.
func RecordPublicationApproved(kind string) {
	PublicationsApprovedTotal.WithLabelValues(kind).Inc()
}

// RecordPublicationDeleted records a deletion.
func RecordPublicationDeleted(kind string) {
	PublicationsDeletedTotal.WithLabelValues(kind).Inc()
}

// RecordRegistration records an account registration by role.
func RecordRegistration(role string) {
	RegistrationsTotal.WithLabelValues(role).Inc()
}

// RecordSubscriptionUpdate records a wholesale subscription replacement.
func RecordSubscriptionUpdate() {
	SubscriptionUpdatesTotal.Inc()
}

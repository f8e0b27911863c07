// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic to keep publication side effects
// (email delivery, social posts) from cascading into request failures.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.XAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return postAnnouncement()
//	})
//
//	retryConfig := retry.DefaultConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return sendMessage()
//	})
package resilience

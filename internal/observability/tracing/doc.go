// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware starts a server span per request and records method,
// path, and status. The global tracer is available for manual spans around
// slower operations like notification fan-out.
//
// Example usage:
//
//	import "newsdesk/internal/observability/tracing"
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing

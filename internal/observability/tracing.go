package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName identifies this process in logs, metrics and traces.
const ServiceName = "scoreline-bot"

// Tracer returns the tracer from the globally registered provider. Without an SDK
// provider installed this is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/Black-And-White-Club/scoreline-bot")
}

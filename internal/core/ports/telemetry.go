package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans around tool invocations.
type Tracer interface {
	// Start creates a new span. The span's Writer receives the child
	// process output as it is captured.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Close flushes any pending output.
	Close() error
}

// Span represents one tracked invocation.
type Span interface {
	io.Writer
	// End completes the span; err is nil on success.
	End(err error)
	// Cached marks the span as served from the result cache.
	Cached()
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

type spanContextKey struct{}

// ContextWithSpan returns a context carrying the active span.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	return context.WithValue(ctx, spanContextKey{}, span)
}

// SpanFromContext returns the active span, or nil when none is set.
func SpanFromContext(ctx context.Context) Span {
	span, _ := ctx.Value(spanContextKey{}).(Span)
	return span
}

package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer only starts child spans. Calls made outside a traced request, such
// as health probes or CLI commands, get a no-op span.
type Tracer struct {
	scope  string
	accept func(name string) bool
}

// New returns a Tracer for the instrumentation scope. A nil accept allows every
// non-empty span name.
func New(scope string, accept func(name string) bool) Tracer {
	return Tracer{scope: scope, accept: accept}
}

// HasPrefix accepts span names starting with prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

func (t Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.accept != nil && !t.accept(name) {
		return ctx, noopSpan
	}
	// Looked up per call since the global provider may be replaced.
	return otel.Tracer(t.scope).Start(ctx, name, opts...)
}

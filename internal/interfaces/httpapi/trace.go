package httpapi

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/whalecast/internal/platform/tracing"
)

// Only handler methods get their own span; middleware and helpers ride on the otelhttp span.
var apiTracer = tracing.New("whalecast/internal/interfaces/httpapi", tracing.HasPrefix("httpapi.Handler."))

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/whalecast/internal/platform/tracing"
)

var usecaseTracer = tracing.New("whalecast/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}

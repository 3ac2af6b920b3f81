package statechart

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startResolutionSpan creates a span covering one full transition
// resolution, including any cascade. Uses the global tracer provider; the
// embedding process decides whether and where spans are exported. The
// caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startResolutionSpan(ctx context.Context, chart, cause string, event Event) (context.Context, trace.Span) {
	tracer := otel.Tracer("statechart")
	ctx, span := tracer.Start(ctx, "statechart.resolve")
	span.SetAttributes(
		attribute.String("chart", chart),
		attribute.String("cause", cause),
		attribute.String("trigger", sanitizeTrigger(event)),
	)

	return ctx, span
}

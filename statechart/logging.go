package statechart

import (
	"context"
	"log/slog"
	"time"
)

// Logger provides logging hooks for machine execution. Implementations
// must be safe for use from multiple goroutines; the machine serializes
// resolutions but async completions arrive on arbitrary goroutines.
type Logger interface {
	NodeEntered(ctx context.Context, chart, node string)
	NodeExited(ctx context.Context, chart, node string)
	TransitionFired(ctx context.Context, chart, from, to string, event Event)
	EventDiscarded(ctx context.Context, chart, node string, event Event)
	AsyncStarted(ctx context.Context, chart, node string)
	AsyncCompleted(ctx context.Context, chart, node string, duration time.Duration, err error)
}

// DefaultLogger implements Logger using slog. Discarded events log at
// debug level only; they are diagnostics, not failures.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: slog.Default(),
	}
}

// NewSlogLogger creates a logger backed by the given slog logger.
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	return &DefaultLogger{
		logger: logger,
	}
}

func (l *DefaultLogger) NodeEntered(ctx context.Context, chart, node string) {
	l.logger.DebugContext(ctx, "Node entered",
		"chart", chart,
		"node", node,
	)
}

func (l *DefaultLogger) NodeExited(ctx context.Context, chart, node string) {
	l.logger.DebugContext(ctx, "Node exited",
		"chart", chart,
		"node", node,
	)
}

func (l *DefaultLogger) TransitionFired(ctx context.Context, chart, from, to string, event Event) {
	l.logger.InfoContext(ctx, "Transition fired",
		"chart", chart,
		"from", from,
		"to", to,
		"trigger", sanitizeTrigger(event),
	)
}

func (l *DefaultLogger) EventDiscarded(ctx context.Context, chart, node string, event Event) {
	l.logger.DebugContext(ctx, "Event discarded",
		"chart", chart,
		"node", node,
		"event", event.String(),
	)
}

func (l *DefaultLogger) AsyncStarted(ctx context.Context, chart, node string) {
	l.logger.InfoContext(ctx, "Async operation started",
		"chart", chart,
		"node", node,
	)
}

func (l *DefaultLogger) AsyncCompleted(ctx context.Context, chart, node string, duration time.Duration, err error) {
	if err != nil {
		l.logger.ErrorContext(ctx, "Async operation failed",
			"chart", chart,
			"node", node,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
	} else {
		l.logger.InfoContext(ctx, "Async operation completed",
			"chart", chart,
			"node", node,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

package future

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// Async runs f in a goroutine without blocking. This is fire-and-forget:
// the caller does not wait for completion or receive a result. Panics are
// recovered and logged.
func Async(f func()) {
	AsyncWithError(func() error {
		f()

		return nil
	})
}

// AsyncWithError runs f in a goroutine without blocking, logging any error
// it returns. Use this for background work whose failure should be visible
// in logs but is deliberately not propagated to the caller.
func AsyncWithError(f func() error) {
	fut := Go(func() (struct{}, error) {
		return struct{}{}, f()
	})

	fut.OnError(func(err error) {
		slog.Error("future.Async", "error", err)
	})
}

// AsyncContextWithError is AsyncWithError with a context passed through to f.
// Cancellation is f's responsibility; the goroutine itself is not stopped.
func AsyncContextWithError(ctx context.Context, f func(ctx context.Context) error) {
	fut := GoContext(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})

	fut.OnError(func(err error) {
		slog.ErrorContext(ctx, "future.AsyncContext", "error", err)
	})
}

// invokeCallback invokes a result callback in its own goroutine with panic
// recovery, so a misbehaving callback can neither block fulfillment nor
// crash the process.
func invokeCallback[T any](callback func(T, error), value T, err error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in future callback",
					"error", recoveredError(r, debug.Stack()))
			}
		}()

		callback(value, err)
	}()
}

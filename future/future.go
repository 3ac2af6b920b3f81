// Package future provides a small promise/future pair for one-shot
// asynchronous results. A Future is the read side; the associated Promise
// is the write side and can be fulfilled exactly once, from any goroutine.
package future

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"
)

// Future represents the read-only side of an asynchronous computation.
// It is fulfilled at most once through its Promise; all waiters are
// unblocked by the same broadcast.
type Future[T any] struct {
	mu        sync.Mutex
	once      sync.Once
	ready     chan struct{}
	value     T
	err       error
	callbacks []func(T, error)
}

// New creates an unfulfilled Future and the Promise that completes it.
// The promise holds a reference to the future, not the other way around,
// so futures can be handed out without exposing the ability to complete them.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		ready: make(chan struct{}),
	}

	return fut, &Promise[T]{
		future:    fut,
		fulfilled: atomic.NewBool(false),
	}
}

// Go runs fn in a new goroutine and returns a Future for its result.
// Panics in fn are recovered and surfaced as the future's error.
func Go[T any](fn func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(recoveredError(r, debug.Stack()))
			}
		}()

		promise.Complete(fn())
	}()

	return fut
}

// GoContext runs fn with the given context in a new goroutine and returns
// a Future for its result. The future itself is not cancelled by the
// context; fn is expected to honor it.
func GoContext[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	return Go(func() (T, error) {
		return fn(ctx)
	})
}

// Await blocks until the future is fulfilled and returns its result.
func (f *Future[T]) Await() (T, error) { //nolint:ireturn
	<-f.ready

	return f.value, f.err
}

// AwaitContext blocks until the future is fulfilled or the context is done,
// whichever happens first.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) { //nolint:ireturn
	select {
	case <-f.ready:
		return f.value, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Done reports whether the future has been fulfilled.
func (f *Future[T]) Done() bool {
	select {
	case <-f.ready:
		return true
	default:
		return false
	}
}

// OnResult registers a callback invoked with the result once the future is
// fulfilled. If the future is already fulfilled, the callback runs
// immediately. Callbacks run in their own goroutine with panic recovery.
func (f *Future[T]) OnResult(fn func(T, error)) {
	if fn == nil {
		return
	}

	f.mu.Lock()

	select {
	case <-f.ready:
		f.mu.Unlock()
		invokeCallback(fn, f.value, f.err)
	default:
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
	}
}

// OnSuccess registers a callback invoked with the value if the future
// completes without error.
func (f *Future[T]) OnSuccess(fn func(T)) {
	if fn == nil {
		return
	}

	f.OnResult(func(value T, err error) {
		if err == nil {
			fn(value)
		}
	})
}

// OnError registers a callback invoked with the error if the future fails.
func (f *Future[T]) OnError(fn func(error)) {
	if fn == nil {
		return
	}

	f.OnResult(func(_ T, err error) {
		if err != nil {
			fn(err)
		}
	})
}

// AwaitAll waits for every future and collects the values in argument order.
// The first error encountered (in argument order) is returned; remaining
// futures are still awaited so their work is not abandoned mid-flight.
func AwaitAll[T any](ctx context.Context, futs ...*Future[T]) ([]T, error) {
	values := make([]T, len(futs))

	var firstErr error

	for i, fut := range futs {
		value, err := fut.AwaitContext(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}

		values[i] = value
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return values, nil
}

// recoveredError wraps a recovered panic value with its stack trace.
func recoveredError(r any, stack []byte) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("recovered from panic: %w\nstack trace: %s", err, stack)
	}

	return fmt.Errorf("recovered from panic: %v\nstack trace: %s", r, stack)
}

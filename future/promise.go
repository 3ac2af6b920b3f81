package future

import (
	"go.uber.org/atomic"
)

// Promise is the write-only side of a Future.
//
// A promise can only be fulfilled once; later calls to Success, Failure or
// Complete are ignored. Fulfillment is safe from any goroutine and unblocks
// every waiter on the associated future.
type Promise[T any] struct {
	future    *Future[T]
	fulfilled *atomic.Bool
}

// Fulfilled reports whether the promise has already been completed.
func (p *Promise[T]) Fulfilled() bool {
	return p.fulfilled.Load()
}

// Success fulfills the promise with a value.
func (p *Promise[T]) Success(value T) {
	p.fulfill(value, nil)
}

// Failure fulfills the promise with an error. The value is left at the
// zero value of T.
func (p *Promise[T]) Failure(err error) {
	var zero T

	p.fulfill(zero, err)
}

// Complete fulfills the promise from a (value, error) pair, matching Go's
// usual return shape. A non-nil error wins over the value.
func (p *Promise[T]) Complete(value T, err error) {
	p.fulfill(value, err)
}

func (p *Promise[T]) fulfill(value T, err error) {
	fut := p.future

	fut.once.Do(func() {
		p.fulfilled.Store(true)

		fut.mu.Lock()

		fut.value = value
		fut.err = err

		// Closing the channel is the broadcast; the mutex is held so a
		// callback cannot register between the close and the collection
		// below and end up invoked twice or not at all.
		close(fut.ready)

		callbacks := fut.callbacks
		fut.callbacks = nil

		fut.mu.Unlock()

		for _, callback := range callbacks {
			invokeCallback(callback, value, err)
		}
	})
}

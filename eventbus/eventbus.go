// Package eventbus provides a small in-process publish/subscribe bus.
// Subscriptions are keyed by an owner token so a whole owner can be
// unsubscribed in one idempotent call, which is how short-lived flows
// guarantee their handlers are released on any exit path.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alitto/pond/v2"
)

const defaultDispatchWorkers = 4

// Message is a published occurrence: a category name plus an optional
// payload the bus does not inspect.
type Message struct {
	Category string
	Payload  any
}

// Handler receives published messages for a subscribed category.
type Handler func(ctx context.Context, msg Message)

type subscription struct {
	owner   string
	handler Handler
}

// Bus is an in-memory publish/subscribe transport. Publish dispatches
// handlers on a worker pool; PublishSync delivers inline on the calling
// goroutine for deterministic in-process use.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription // category -> subscribers
	pool          pond.Pool
	logger        *slog.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithDispatchWorkers sets the size of the asynchronous dispatch pool.
func WithDispatchWorkers(count int) Option {
	return func(b *Bus) {
		b.pool = pond.NewPool(count)
	}
}

// WithLogger sets the bus logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// New creates a bus with an empty subscription set.
func New(opts ...Option) *Bus {
	b := &Bus{
		subscriptions: make(map[string][]subscription),
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.pool == nil {
		b.pool = pond.NewPool(defaultDispatchWorkers)
	}

	return b
}

// Subscribe registers a handler for a category on behalf of an owner.
// The same owner may hold any number of subscriptions across categories.
func (b *Bus) Subscribe(owner, category string, handler Handler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscriptions[category] = append(b.subscriptions[category], subscription{
		owner:   owner,
		handler: handler,
	})
	subscriptionsActive.WithLabelValues(category).Inc()

	b.logger.Debug("Subscribed",
		"owner", owner,
		"category", category,
	)
}

// UnsubscribeAll removes every subscription held by the owner. It is
// idempotent and total: safe to call for an owner that never subscribed
// or was already unsubscribed.
func (b *Bus) UnsubscribeAll(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0

	for category, subs := range b.subscriptions {
		kept := subs[:0]

		for _, sub := range subs {
			if sub.owner == owner {
				removed++

				subscriptionsActive.WithLabelValues(category).Dec()

				continue
			}

			kept = append(kept, sub)
		}

		if len(kept) == 0 {
			delete(b.subscriptions, category)
		} else {
			b.subscriptions[category] = kept
		}
	}

	b.logger.Debug("Unsubscribed all",
		"owner", owner,
		"removed", removed,
	)
}

// Publish broadcasts a message to all category subscribers, dispatching
// each handler on the worker pool. Fire-and-forget: delivery order across
// subscribers is not guaranteed and failures are the handlers' own.
func (b *Bus) Publish(ctx context.Context, msg Message) {
	publishedTotal.WithLabelValues(msg.Category).Inc()

	for _, handler := range b.handlersFor(msg.Category) {
		handler := handler

		err := b.pool.Go(func() {
			handler(ctx, msg)
		})
		if err != nil {
			deliveriesDroppedTotal.WithLabelValues(msg.Category).Inc()
			b.logger.Warn("Dropped message, dispatch pool stopped",
				"category", msg.Category,
				"error", err,
			)
		}
	}
}

// PublishSync delivers a message to all category subscribers inline, in
// subscription order, returning after every handler has run.
func (b *Bus) PublishSync(ctx context.Context, msg Message) {
	publishedTotal.WithLabelValues(msg.Category).Inc()

	for _, handler := range b.handlersFor(msg.Category) {
		handler(ctx, msg)
	}
}

// Stop shuts down the dispatch pool, waiting for in-flight deliveries.
func (b *Bus) Stop() {
	b.pool.StopAndWait()
}

// handlersFor snapshots the handlers for a category so delivery never
// holds the subscription lock.
func (b *Bus) handlersFor(category string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := b.subscriptions[category]
	if len(subs) == 0 {
		return nil
	}

	handlers := make([]Handler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}

	return handlers
}

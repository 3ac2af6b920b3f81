package statechart

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/playforge/gamekit/future"
)

// FailureHandler is notified when an async-wait operation fails and the
// machine halts. It runs outside the machine's lock, so it may inspect the
// machine but any further progress requires building a new one.
type FailureHandler func(err error)

// Machine executes a Chart. All transition resolution, whether caused by
// external triggers or async-wait completions, is serialized behind a
// single mutex,
// so no two resolutions ever run concurrently. Every resolution settles
// fully (cascading through choice and async-wait targets) before the call
// that caused it returns; an async-wait node settles by starting its
// operation.
type Machine struct {
	chart     *Chart
	logger    Logger
	onFailure FailureHandler

	mu      sync.Mutex
	current *node
	started bool
	done    bool
	failure error
	waitSeq uint64 // generation counter guarding stale async completions
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger for machine execution. Defaults to the
// slog-backed DefaultLogger.
func WithLogger(logger Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithFailureHandler sets the handler invoked when an async-wait operation
// fails.
func WithFailureHandler(handler FailureHandler) Option {
	return func(m *Machine) {
		m.onFailure = handler
	}
}

// NewMachine creates a machine for the given chart. The chart is shared,
// never copied; all runtime state lives in the machine.
func NewMachine(chart *Chart, opts ...Option) *Machine {
	m := &Machine{
		chart:  chart,
		logger: NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start enters the initial node and immediately resolves its automatic
// transition, cascading until the machine settles. It returns
// ErrAlreadyStarted on a second call.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	m.started = true
	m.current = m.chart.nodes[m.chart.initial]

	ctx, span := startResolutionSpan(ctx, m.chart.name, "start", "")
	defer span.End()

	// The initial node's structure is validated at build time: exactly
	// one unconditional outgoing transition.
	m.fire(ctx, m.current.transitions[0], "")
	span.SetStatus(codes.Ok, "settled")

	return nil
}

// Trigger delivers an event token to the machine. If the active node is a
// simple node with a transition keyed by the token, the transition fires
// and any cascade settles before Trigger returns. Otherwise the token is
// discarded: triggers are fire-and-forget notifications, not commands.
func (m *Machine) Trigger(ctx context.Context, event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started || m.done || m.failure != nil || m.current == nil {
		m.discard(ctx, event)

		return
	}

	if m.current.kind != KindSimple {
		m.discard(ctx, event)

		return
	}

	t, ok := m.current.match(event)
	if !ok {
		m.discard(ctx, event)

		return
	}

	ctx, span := startResolutionSpan(ctx, m.chart.name, "trigger", event)
	defer span.End()

	m.fire(ctx, t, event)
	span.SetStatus(codes.Ok, "settled")
}

// TriggerFunc returns the machine's trigger as an opaque function value.
// Collaborators hold and invoke it without knowing machine internals.
func (m *Machine) TriggerFunc() func(ctx context.Context, event Event) {
	return m.Trigger
}

// Current returns the name of the active node, or "" before Start.
func (m *Machine) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ""
	}

	return m.current.name
}

// Done reports whether the machine has entered a final node.
func (m *Machine) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.done
}

// Err returns the fatal error that halted the machine, if any.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.failure
}

// discard drops an event token without effect. Deliberately not an error:
// logged at a diagnostic level and counted, nothing else.
func (m *Machine) discard(ctx context.Context, event Event) {
	nodeName := ""
	if m.current != nil {
		nodeName = m.current.name
	}

	if m.logger != nil {
		m.logger.EventDiscarded(ctx, m.chart.name, nodeName, event)
	}

	eventsDiscardedTotal.WithLabelValues(m.chart.name, sanitizeNode(nodeName), event.String()).Inc()
}

// fire resolves one transition from the current node: exit hooks in
// declaration order, then the transition action, then entry into the
// target. Callers hold m.mu.
func (m *Machine) fire(ctx context.Context, t transition, event Event) {
	from := m.current

	for _, hook := range from.exitHooks {
		hook(ctx)
	}

	if m.logger != nil {
		m.logger.NodeExited(ctx, m.chart.name, from.name)
	}

	if t.action != nil {
		t.action(ctx)
	}

	target := m.chart.nodes[t.target]

	if m.logger != nil {
		m.logger.TransitionFired(ctx, m.chart.name, from.name, target.name, event)
	}

	transitionsTotal.WithLabelValues(m.chart.name, from.name, target.name, sanitizeTrigger(event)).Inc()

	m.enter(ctx, target)
}

// enter makes target the active node, runs its entry hooks in declaration
// order, and cascades automatic resolution for choice and async-wait
// targets. Final targets stop the machine. Callers hold m.mu.
func (m *Machine) enter(ctx context.Context, target *node) {
	m.current = target

	for _, hook := range target.entryHooks {
		hook(ctx)
	}

	if m.logger != nil {
		m.logger.NodeEntered(ctx, m.chart.name, target.name)
	}

	switch target.kind {
	case KindChoice:
		m.resolveChoice(ctx, target)
	case KindAsyncWait:
		m.beginWait(ctx, target)
	case KindFinal:
		m.done = true
	case KindInitial, KindSimple:
		// Settled; simple nodes wait for triggers.
	}
}

// resolveChoice evaluates the choice node's branches in declaration order
// and fires the first match. Build-time validation guarantees the last
// branch is the unconditional fallback, so a match always exists. Choice
// nodes have no exit hook slot; only the branch action runs between entry
// hooks of the choice and entry hooks of the selected target.
func (m *Machine) resolveChoice(ctx context.Context, choice *node) {
	for _, br := range choice.branches {
		if br.condition != nil && !br.condition(ctx) {
			continue
		}

		m.fire(ctx, transition{target: br.target, action: br.action}, "")

		return
	}
}

// beginWait starts the async-wait node's operation. The machine suspends
// logical progress only; triggers keep arriving and are discarded per the
// normal rules while the wait is pending. Completion re-enters the machine
// through completeWait on whatever goroutine the operation finished on.
func (m *Machine) beginWait(ctx context.Context, waitNode *node) {
	m.waitSeq++
	seq := m.waitSeq
	start := time.Now()

	if m.logger != nil {
		m.logger.AsyncStarted(ctx, m.chart.name, waitNode.name)
	}

	fut := future.GoContext(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, waitNode.operation(ctx)
	})

	fut.OnResult(func(_ struct{}, err error) {
		m.completeWait(ctx, waitNode, seq, start, err)
	})
}

// completeWait applies an async-wait completion under the machine lock.
// Completions from a superseded wait generation are ignored; a failure
// halts the machine and surfaces through Err and the failure handler.
func (m *Machine) completeWait(ctx context.Context, waitNode *node, seq uint64, start time.Time, opErr error) {
	m.mu.Lock()

	stale := m.done || m.failure != nil || m.current != waitNode || seq != m.waitSeq
	if stale {
		m.mu.Unlock()

		return
	}

	elapsed := time.Since(start)

	outcome := outcomeSuccess
	if opErr != nil {
		outcome = outcomeError
	}

	asyncWaitDuration.WithLabelValues(m.chart.name, waitNode.name, outcome).Observe(elapsed.Seconds())

	if m.logger != nil {
		m.logger.AsyncCompleted(ctx, m.chart.name, waitNode.name, elapsed, opErr)
	}

	ctx, span := startResolutionSpan(ctx, m.chart.name, "async_complete", "")
	defer span.End()

	if opErr != nil {
		span.RecordError(opErr)
		span.SetStatus(codes.Error, "async operation failed")

		m.failure = WrapNodeError(m.chart.name, waitNode.name, opErr)
		failuresTotal.WithLabelValues(m.chart.name, waitNode.name).Inc()

		handler := m.onFailure
		failure := m.failure
		m.mu.Unlock()

		if handler != nil {
			handler(failure)
		}

		return
	}

	// Exactly one outgoing transition, validated at build time. Async-wait
	// nodes have no exit hook slot, so fire only runs the transition action
	// and the target's entry hooks.
	m.fire(ctx, waitNode.transitions[0], "")
	span.SetStatus(codes.Ok, "settled")
	m.mu.Unlock()
}

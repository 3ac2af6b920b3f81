// Package statechart provides a small hierarchical state machine runtime
// built from typed nodes: an initial node, final nodes, simple event-driven
// nodes, choice pseudo-states resolved through ordered conditions, and
// async-wait nodes that suspend progress until one asynchronous operation
// completes.
//
// A Chart is built once through a Builder, validated structurally, and never
// mutated afterwards. A Machine executes a Chart: it tracks the single
// active node, delivers external event tokens through Trigger, and cascades
// automatic resolution (choice selection, async-wait starts) until the
// machine settles. Event tokens the active node does not recognize are
// discarded, never treated as errors.
package statechart

import "context"

// Event is an identity-comparable token naming an external occurrence.
// The token text doubles as its debug label. Events carry no payload;
// they exist only to key transitions.
type Event string

func (e Event) String() string {
	return string(e)
}

// Kind classifies the behavior of a node.
type Kind int

const (
	// KindInitial is the single entry node; it has exactly one automatic
	// outgoing transition and supports exit hooks only.
	KindInitial Kind = iota
	// KindFinal is terminal; entry hooks run once and the machine stops.
	KindFinal
	// KindSimple waits for event tokens and supports entry and exit hooks.
	KindSimple
	// KindChoice resolves immediately on entry through ordered conditions
	// plus a mandatory unconditional fallback, evaluated last.
	KindChoice
	// KindAsyncWait starts one asynchronous operation on entry and takes
	// its single outgoing transition when the operation completes.
	KindAsyncWait
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindFinal:
		return "final"
	case KindSimple:
		return "simple"
	case KindChoice:
		return "choice"
	case KindAsyncWait:
		return "async_wait"
	default:
		return "unknown"
	}
}

// Hook is a side-effecting entry or exit callback. Hooks must not call
// Trigger synchronously on the machine that is running them; they may
// start asynchronous work that triggers later from outside the current
// call stack.
type Hook func(ctx context.Context)

// Condition guards a choice branch.
type Condition func(ctx context.Context) bool

// Action is a side effect run between the source's exit hooks and the
// target's entry hooks when a transition fires.
type Action func(ctx context.Context)

// Operation is the asynchronous work an async-wait node performs. A nil
// error advances the machine through the node's single outgoing
// transition; an error is fatal to the machine.
type Operation func(ctx context.Context) error

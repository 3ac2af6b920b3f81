package statechart

import (
	"errors"
	"fmt"
)

// Build-time configuration errors. A chart that fails Build is not usable.
var (
	// ErrChartNameRequired indicates the builder was created without a chart name.
	ErrChartNameRequired = errors.New("chart name is required")
	// ErrNodeNameRequired indicates a node was declared with an empty name.
	ErrNodeNameRequired = errors.New("node name is required")
	// ErrDuplicateNode indicates two nodes share a name.
	ErrDuplicateNode = errors.New("duplicate node name")
	// ErrNoInitialNode indicates the chart has no initial node.
	ErrNoInitialNode = errors.New("chart has no initial node")
	// ErrMultipleInitialNodes indicates more than one initial node was declared.
	ErrMultipleInitialNodes = errors.New("chart has more than one initial node")
	// ErrInitialTargetRequired indicates the initial node has no outgoing transition.
	ErrInitialTargetRequired = errors.New("initial node requires exactly one outgoing transition")
	// ErrNoFinalNode indicates no final node is reachable from the initial node.
	ErrNoFinalNode = errors.New("no final node is reachable")
	// ErrChoiceFallbackRequired indicates a choice node lacks its unconditional fallback.
	ErrChoiceFallbackRequired = errors.New("choice node requires an unconditional fallback branch")
	// ErrChoiceBranchAfterFallback indicates a conditioned branch was declared after the fallback.
	ErrChoiceBranchAfterFallback = errors.New("choice fallback must be the last declared branch")
	// ErrChoiceFallbackDeclared indicates a second fallback was declared on the same choice node.
	ErrChoiceFallbackDeclared = errors.New("choice node already has a fallback branch")
	// ErrAsyncWaitOperationRequired indicates an async-wait node has no operation.
	ErrAsyncWaitOperationRequired = errors.New("async-wait node requires an operation")
	// ErrAsyncWaitTargetRequired indicates an async-wait node does not have exactly one outgoing transition.
	ErrAsyncWaitTargetRequired = errors.New("async-wait node requires exactly one outgoing transition")
	// ErrUnknownTarget indicates a transition references a node that was never declared.
	ErrUnknownTarget = errors.New("transition targets an undefined node")
	// ErrDuplicateEventTransition indicates a simple node declares two transitions for one event.
	ErrDuplicateEventTransition = errors.New("node already has a transition for this event")

	// ErrAlreadyStarted indicates Start was called twice on the same machine.
	ErrAlreadyStarted = errors.New("machine already started")
	// ErrNotStarted indicates the machine has not been started.
	ErrNotStarted = errors.New("machine not started")
)

// NodeError wraps an error with the node it occurred in.
type NodeError struct {
	Chart string
	Node  string
	Err   error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("chart %s, node %s: %v", e.Chart, e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// WrapNodeError wraps an error with chart and node context. Returns nil
// for a nil error.
func WrapNodeError(chart, node string, err error) error {
	if err == nil {
		return nil
	}

	return &NodeError{
		Chart: chart,
		Node:  node,
		Err:   err,
	}
}

// TransitionError wraps an error with the transition it concerns.
type TransitionError struct {
	From string
	To   string
	Err  error
}

func (e *TransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("transition from %s: %v", e.From, e.Err)
	}

	return fmt.Sprintf("transition %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// WrapTransitionError wraps an error with transition context. Returns nil
// for a nil error.
func WrapTransitionError(from, to string, err error) error {
	if err == nil {
		return nil
	}

	return &TransitionError{
		From: from,
		To:   to,
		Err:  err,
	}
}

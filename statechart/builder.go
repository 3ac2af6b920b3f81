package statechart

import (
	"errors"
	"fmt"
)

// Builder constructs a Chart node by node. Structural problems are
// collected while the graph is declared and reported together by Build,
// so the fluent per-node builders never need to return errors mid-chain.
type Builder struct {
	name  string
	nodes map[string]*node
	order []string
	errs  []error
}

// NewBuilder creates a builder for a chart with the given name.
func NewBuilder(name string) *Builder {
	b := &Builder{
		name:  name,
		nodes: make(map[string]*node),
	}

	if name == "" {
		b.errs = append(b.errs, ErrChartNameRequired)
	}

	return b
}

// TransitionOption configures a declared transition or choice branch.
type TransitionOption func(*transition)

// WithAction attaches a side-effecting action to a transition. The action
// runs after the source's exit hooks and before the target's entry hooks.
func WithAction(action Action) TransitionOption {
	return func(t *transition) {
		t.action = action
	}
}

// declare registers a node, recording duplicate or empty names as errors.
func (b *Builder) declare(name string, kind Kind) *node {
	if name == "" {
		b.errs = append(b.errs, fmt.Errorf("%w: %s node", ErrNodeNameRequired, kind))
	}

	if _, exists := b.nodes[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateNode, name))
	}

	n := &node{name: name, kind: kind}
	b.nodes[name] = n
	b.order = append(b.order, name)

	return n
}

// Initial declares the chart's initial node. A chart has exactly one.
func (b *Builder) Initial(name string) *InitialBuilder {
	for _, existing := range b.nodes {
		if existing.kind == KindInitial {
			b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrMultipleInitialNodes, name))

			break
		}
	}

	return &InitialBuilder{b: b, node: b.declare(name, KindInitial)}
}

// Simple declares an event-driven node.
func (b *Builder) Simple(name string) *SimpleBuilder {
	return &SimpleBuilder{b: b, node: b.declare(name, KindSimple)}
}

// Choice declares a choice pseudo-state.
func (b *Builder) Choice(name string) *ChoiceBuilder {
	return &ChoiceBuilder{b: b, node: b.declare(name, KindChoice)}
}

// AsyncWait declares an async-wait node running the given operation on entry.
func (b *Builder) AsyncWait(name string, op Operation) *AsyncWaitBuilder {
	n := b.declare(name, KindAsyncWait)
	n.operation = op

	if op == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrAsyncWaitOperationRequired, name))
	}

	return &AsyncWaitBuilder{b: b, node: n}
}

// Final declares a terminal node.
func (b *Builder) Final(name string) *FinalBuilder {
	return &FinalBuilder{node: b.declare(name, KindFinal)}
}

// Build validates the declared graph and returns the immutable Chart.
// All structural problems are reported, joined, in one error.
func (b *Builder) Build() (*Chart, error) {
	errs := b.errs

	var initial string

	for _, name := range b.order {
		n := b.nodes[name]

		switch n.kind {
		case KindInitial:
			initial = n.name

			if len(n.transitions) != 1 {
				errs = append(errs, fmt.Errorf("%w: %s", ErrInitialTargetRequired, n.name))
			}
		case KindChoice:
			if len(n.branches) == 0 || n.branches[len(n.branches)-1].condition != nil {
				errs = append(errs, fmt.Errorf("%w: %s", ErrChoiceFallbackRequired, n.name))
			}
		case KindAsyncWait:
			if len(n.transitions) != 1 {
				errs = append(errs, fmt.Errorf("%w: %s", ErrAsyncWaitTargetRequired, n.name))
			}
		case KindSimple, KindFinal:
			// No per-kind structure beyond what the fluent builders allow.
		}

		for _, t := range n.transitions {
			if _, ok := b.nodes[t.target]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrUnknownTarget, n.name, t.target))
			}
		}

		for _, br := range n.branches {
			if _, ok := b.nodes[br.target]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrUnknownTarget, n.name, br.target))
			}
		}
	}

	if initial == "" {
		errs = append(errs, ErrNoInitialNode)
	} else if !b.finalReachable(initial) {
		errs = append(errs, ErrNoFinalNode)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid chart %q: %w", b.name, errors.Join(errs...))
	}

	return &Chart{
		name:    b.name,
		nodes:   b.nodes,
		initial: initial,
	}, nil
}

// finalReachable walks the graph from the initial node and reports whether
// any final node can be reached.
func (b *Builder) finalReachable(initial string) bool {
	visited := make(map[string]bool)
	queue := []string{initial}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if visited[name] {
			continue
		}

		visited[name] = true

		n, ok := b.nodes[name]
		if !ok {
			continue
		}

		if n.kind == KindFinal {
			return true
		}

		for _, t := range n.transitions {
			queue = append(queue, t.target)
		}

		for _, br := range n.branches {
			queue = append(queue, br.target)
		}
	}

	return false
}

// InitialBuilder configures the initial node.
type InitialBuilder struct {
	b    *Builder
	node *node
}

// OnExit appends exit hooks, run in declaration order when the initial
// node's automatic transition fires.
func (ib *InitialBuilder) OnExit(hooks ...Hook) *InitialBuilder {
	ib.node.exitHooks = append(ib.node.exitHooks, hooks...)

	return ib
}

// To sets the initial node's single unconditional outgoing transition.
func (ib *InitialBuilder) To(target string, opts ...TransitionOption) *InitialBuilder {
	t := transition{target: target}
	for _, opt := range opts {
		opt(&t)
	}

	ib.node.transitions = append(ib.node.transitions, t)

	return ib
}

// SimpleBuilder configures an event-driven node.
type SimpleBuilder struct {
	b    *Builder
	node *node
}

// OnEntry appends entry hooks, run in declaration order.
func (sb *SimpleBuilder) OnEntry(hooks ...Hook) *SimpleBuilder {
	sb.node.entryHooks = append(sb.node.entryHooks, hooks...)

	return sb
}

// OnExit appends exit hooks, run in declaration order.
func (sb *SimpleBuilder) OnExit(hooks ...Hook) *SimpleBuilder {
	sb.node.exitHooks = append(sb.node.exitHooks, hooks...)

	return sb
}

// On declares an event-keyed transition to target. The transition fires
// only while this node is active.
func (sb *SimpleBuilder) On(event Event, target string, opts ...TransitionOption) *SimpleBuilder {
	if _, dup := sb.node.match(event); dup {
		sb.b.errs = append(sb.b.errs,
			fmt.Errorf("%w: %s on %q", ErrDuplicateEventTransition, sb.node.name, event))
	}

	t := transition{event: event, target: target}
	for _, opt := range opts {
		opt(&t)
	}

	sb.node.transitions = append(sb.node.transitions, t)

	return sb
}

// ChoiceBuilder configures a choice pseudo-state.
type ChoiceBuilder struct {
	b    *Builder
	node *node
}

// OnEntry appends entry hooks, run before the branches are evaluated.
func (cb *ChoiceBuilder) OnEntry(hooks ...Hook) *ChoiceBuilder {
	cb.node.entryHooks = append(cb.node.entryHooks, hooks...)

	return cb
}

// When appends a conditioned branch. Branches are evaluated in declaration
// order; the first condition returning true selects its target.
func (cb *ChoiceBuilder) When(cond Condition, target string, opts ...TransitionOption) *ChoiceBuilder {
	if cb.fallbackDeclared() {
		cb.b.errs = append(cb.b.errs,
			fmt.Errorf("%w: %s", ErrChoiceBranchAfterFallback, cb.node.name))
	}

	cb.node.branches = append(cb.node.branches, cb.branch(cond, target, opts))

	return cb
}

// Otherwise declares the mandatory unconditional fallback branch, taken
// when no condition matches. It must be the last branch declared.
func (cb *ChoiceBuilder) Otherwise(target string, opts ...TransitionOption) *ChoiceBuilder {
	if cb.fallbackDeclared() {
		cb.b.errs = append(cb.b.errs,
			fmt.Errorf("%w: %s", ErrChoiceFallbackDeclared, cb.node.name))
	}

	cb.node.branches = append(cb.node.branches, cb.branch(nil, target, opts))

	return cb
}

func (cb *ChoiceBuilder) branch(cond Condition, target string, opts []TransitionOption) branch {
	t := transition{target: target}
	for _, opt := range opts {
		opt(&t)
	}

	return branch{
		condition: cond,
		target:    target,
		action:    t.action,
	}
}

func (cb *ChoiceBuilder) fallbackDeclared() bool {
	n := len(cb.node.branches)

	return n > 0 && cb.node.branches[n-1].condition == nil
}

// AsyncWaitBuilder configures an async-wait node.
type AsyncWaitBuilder struct {
	b    *Builder
	node *node
}

// OnEntry appends entry hooks, run before the operation starts.
func (ab *AsyncWaitBuilder) OnEntry(hooks ...Hook) *AsyncWaitBuilder {
	ab.node.entryHooks = append(ab.node.entryHooks, hooks...)

	return ab
}

// Then sets the single transition taken when the operation completes.
func (ab *AsyncWaitBuilder) Then(target string, opts ...TransitionOption) *AsyncWaitBuilder {
	t := transition{target: target}
	for _, opt := range opts {
		opt(&t)
	}

	ab.node.transitions = append(ab.node.transitions, t)

	return ab
}

// FinalBuilder configures a terminal node.
type FinalBuilder struct {
	node *node
}

// OnEntry appends entry hooks, run in declaration order when the machine
// reaches this node.
func (fb *FinalBuilder) OnEntry(hooks ...Hook) *FinalBuilder {
	fb.node.entryHooks = append(fb.node.entryHooks, hooks...)

	return fb
}

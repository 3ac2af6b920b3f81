package statechart

// transition is an outgoing edge of a node. Automatic transitions
// (initial, async-wait, choice branches) have an empty event.
type transition struct {
	event  Event
	target string
	action Action
}

// branch is one ordered (condition, target) pair of a choice node.
// The fallback branch has a nil condition and is always declared last.
type branch struct {
	condition Condition
	target    string
	action    Action
}

// node is a single state in the chart. Which fields are populated depends
// on the kind; the builder enforces the per-kind structure at Build time.
type node struct {
	name        string
	kind        Kind
	entryHooks  []Hook
	exitHooks   []Hook
	transitions []transition // declaration order
	branches    []branch     // choice nodes only, declaration order
	operation   Operation    // async-wait nodes only
}

// match returns the first transition keyed by the given event, if any.
func (n *node) match(event Event) (transition, bool) {
	for _, t := range n.transitions {
		if t.event == event {
			return t, true
		}
	}

	return transition{}, false
}

// Chart is an immutable node graph produced by Builder.Build. It carries
// no runtime state; any number of machines can execute the same chart.
type Chart struct {
	name    string
	nodes   map[string]*node
	initial string
}

// Name returns the chart name used in logs, metrics and spans.
func (c *Chart) Name() string {
	return c.name
}

// Nodes returns the names of all declared nodes.
func (c *Chart) Nodes() []string {
	names := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		names = append(names, name)
	}

	return names
}

// Initial returns the name of the initial node.
func (c *Chart) Initial() string {
	return c.initial
}

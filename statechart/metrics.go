package statechart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric outcome constants.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Metric definitions. Labels stay low-cardinality: chart and node names are
// declared at build time, event tokens are a small fixed vocabulary.
var (
	// transitionsTotal tracks fired transitions by chart, edge and trigger.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statechart_transitions_total",
		Help: "Total number of fired transitions by chart, from_node, to_node and trigger",
	}, []string{"chart", "from_node", "to_node", "trigger"})

	// eventsDiscardedTotal tracks tokens dropped without effect.
	eventsDiscardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statechart_events_discarded_total",
		Help: "Total number of event tokens discarded because the active node did not recognize them",
	}, []string{"chart", "node", "event"})

	// asyncWaitDuration tracks how long async-wait operations ran.
	asyncWaitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "statechart_async_wait_duration_seconds",
		Help:    "Duration of async-wait operations by chart, node and outcome",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"chart", "node", "outcome"})

	// failuresTotal tracks fatal async-wait failures.
	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statechart_failures_total",
		Help: "Total number of async-wait operation failures that halted a machine",
	}, []string{"chart", "node"})
)

// Helper functions for label sanitization.
func sanitizeTrigger(event Event) string {
	if event == "" {
		return "auto"
	}

	return event.String()
}

func sanitizeNode(node string) string {
	if node == "" {
		return "none"
	}

	return node
}

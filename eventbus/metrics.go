package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric definitions. Category names are a small fixed vocabulary, so the
// label stays low-cardinality.
var (
	// publishedTotal tracks messages published by category.
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventbus_messages_published_total",
		Help: "Total number of messages published by category",
	}, []string{"category"})

	// deliveriesDroppedTotal tracks handler deliveries lost to a stopped pool.
	deliveriesDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventbus_deliveries_dropped_total",
		Help: "Total number of handler deliveries dropped because the dispatch pool was stopped",
	}, []string{"category"})

	// subscriptionsActive tracks live subscriptions by category.
	subscriptionsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "eventbus_subscriptions_active",
		Help: "Number of active subscriptions by category",
	}, []string{"category"})
)

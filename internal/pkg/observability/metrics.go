// Package observability exposes the service's Prometheus metrics.
// Counters track routing outcomes; the HTTP server serves them on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersAssigned counts orders routed to a store, both first
	// assignments and reassignments after a rejection.
	OrdersAssigned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_assigned_total",
		Help: "Total number of store assignments, including reassignments.",
	})

	// OrdersRejected counts manager rejections.
	OrdersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of manager rejections.",
	})

	// OrdersCancelled counts orders that left the routing flow without a
	// store, whether by rejection limit or for lack of a candidate.
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of cancelled orders.",
	})

	// FallbackRecommendations counts reassignments resolved by the
	// deterministic fallback instead of the AI recommender.
	FallbackRecommendations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fallback_recommendations_total",
		Help: "Total number of store recommendations produced by the geographic fallback.",
	})
)

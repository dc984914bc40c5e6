// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "logistics_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route and status code.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "code"},
	)

	// WorkflowActionsTotal counts workflow calls by action and outcome, where
	// outcome is "ok" or the error kind that rejected the call.
	WorkflowActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_workflow_actions_total",
		Help: "Total number of workflow actions by outcome.",
	},
		[]string{"action", "outcome"},
	)

	OrdersChangedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_orders_changed_total",
		Help: "Total number of orders changed by successful workflow actions.",
	},
		[]string{"action"},
	)

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_outbox_published_total",
		Help: "Total number of outbox messages delivered to the broker.",
	})

	OutboxFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_outbox_failed_total",
		Help: "Total number of failed outbox delivery attempts.",
	})
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, code int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// ObserveWorkflow records the outcome of a workflow action that touched changed orders.
func ObserveWorkflow(action, outcome string, changed int) {
	WorkflowActionsTotal.WithLabelValues(action, outcome).Inc()
	if changed > 0 {
		OrdersChangedTotal.WithLabelValues(action).Add(float64(changed))
	}
}

// internal/pkg/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Item results recorded on ReorderItemsTotal
const (
	ItemOrdered = "ordered"
	ItemSkipped = "skipped"
	ItemFailed  = "failed"
)

// Run outcomes recorded on ReorderRunsTotal
const (
	OutcomeCompleted = "completed"
	OutcomePartial   = "partial"
	OutcomeError     = "error"
	OutcomeLocked    = "locked"
)

var (
	ReorderRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorder_runs_total",
			Help: "Total number of reorder runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	ReorderItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorder_items_total",
			Help: "Total number of eligible items by result",
		},
		[]string{"result"},
	)

	PurchaseOrdersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reorder_purchase_orders_total",
			Help: "Total number of purchase orders created by the reorder engine",
		},
	)

	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reorder_run_duration_seconds",
			Help:    "Duration of reorder runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	UnclosedAuditEntries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reorder_open_audit_entries_unclosed_total",
			Help: "Pending reorder history entries that were never closed by their run",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(ReorderRunsTotal)
	prometheus.MustRegister(ReorderItemsTotal)
	prometheus.MustRegister(PurchaseOrdersTotal)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(UnclosedAuditEntries)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
}

// ObserveRun records one finished run
func ObserveRun(mode, outcome string, started time.Time) {
	ReorderRunsTotal.WithLabelValues(mode, outcome).Inc()
	RunDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

// ObserveLocked records a scheduled run skipped because another holds the lock
func ObserveLocked(mode string) {
	ReorderRunsTotal.WithLabelValues(mode, OutcomeLocked).Inc()
}

// ObserveItems adds n items with the given result
func ObserveItems(result string, n int) {
	if n <= 0 {
		return
	}
	ReorderItemsTotal.WithLabelValues(result).Add(float64(n))
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

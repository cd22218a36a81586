// Package metrics holds the Prometheus collectors of the job tracker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jta"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	ledgerMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "ledger_mutations_total",
			Help:      "Committed ledger mutations by kind.",
		},
		[]string{"kind"},
	)

	statusUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "status_updates_total",
			Help:      "Cached application status rewrites caused by ledger mutations.",
		},
	)

	draftRepairs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "draft_repairs_total",
			Help:      "DRAFT entries synthesized after the last ledger entry was deleted.",
		},
	)

	schedulingFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "scheduling_failures_total",
			Help:      "Failed enqueue or cancel calls against the job facility.",
		},
		[]string{"op"},
	)

	remindersFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "fired_total",
			Help:      "Reminder jobs handled, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		ledgerMutations,
		statusUpdates,
		draftRepairs,
		schedulingFailures,
		remindersFired,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// HTTPRequestStarted tracks an in-flight request and returns the func that
// records its completion.
func HTTPRequestStarted(method, route string) func(status int) {
	start := time.Now()
	httpInFlight.Inc()
	return func(status int) {
		httpInFlight.Dec()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordLedgerMutation counts a committed ledger create, update or delete.
func RecordLedgerMutation(kind string) {
	ledgerMutations.WithLabelValues(kind).Inc()
}

// RecordStatusUpdate counts a rewrite of an application's cached status.
func RecordStatusUpdate() {
	statusUpdates.Inc()
}

// RecordDraftRepair counts a synthesized DRAFT entry.
func RecordDraftRepair() {
	draftRepairs.Inc()
}

// RecordSchedulingFailure counts a failed enqueue or cancel.
func RecordSchedulingFailure(op string) {
	schedulingFailures.WithLabelValues(op).Inc()
}

// RecordReminderFired counts a handled reminder job.
func RecordReminderFired(outcome string) {
	remindersFired.WithLabelValues(outcome).Inc()
}

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for Hearth.
type Metrics struct {
	// Dependency graph mutations, by operation (add, remove) and result
	// (ok or the domain error code).
	DependencyMutations *prometheus.CounterVec
	CycleCheckDuration  prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance registered on registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		DependencyMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hearth_dependency_mutations_total",
				Help: "Total number of dependency add/remove attempts",
			},
			[]string{"operation", "result"},
		),
		CycleCheckDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hearth_cycle_check_duration_seconds",
				Help:    "Time spent deciding whether a new edge closes a cycle",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hearth_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hearth_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// NewRegistry creates a new Prometheus registry with metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	return reg, NewMetrics(reg)
}

// Handler returns the exposition handler for reg.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// RecordMutation counts one add/remove outcome. A nil receiver is a no-op.
func (m *Metrics) RecordMutation(operation, result string) {
	if m == nil {
		return
	}
	m.DependencyMutations.WithLabelValues(operation, result).Inc()
}

// ObserveCycleCheck records how long a cycle check took.
func (m *Metrics) ObserveCycleCheck(d time.Duration) {
	if m == nil {
		return
	}
	m.CycleCheckDuration.Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

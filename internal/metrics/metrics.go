// Package metrics provides Prometheus metrics for the xAPI connector.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values shared by the counters.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
	OutcomeInvalid   = "invalid"
	OutcomeOK        = "ok"
	OutcomeError     = "error"
)

// Manager owns the connector's metrics. A nil *Manager is valid and records
// nothing, so components can take one without checking.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	statements         *prometheus.CounterVec
	lrsRequests        *prometheus.CounterVec
	lrsRequestDuration *prometheus.HistogramVec
	reports            *prometheus.CounterVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the LRS latency histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets the Prometheus registry the metrics are registered on.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a metrics manager on its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "xapi",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.statements = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "statements_total",
			Help:      "Statements built and submitted, by verb and outcome",
		},
		[]string{"verb", "outcome"},
	)

	m.lrsRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "lrs_requests_total",
			Help:      "Requests sent to the LRS, by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	m.lrsRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "lrs_request_duration_seconds",
			Help:      "LRS request latency including dial and read to end of stream",
			Buckets:   m.histogramBuckets,
		},
		[]string{"method"},
	)

	m.reports = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "reports_total",
			Help:      "Section reports served, by outcome",
		},
		[]string{"outcome"},
	)

	return m
}

// RecordStatement counts one statement submission.
func (m *Manager) RecordStatement(verb, outcome string) {
	if m == nil {
		return
	}
	m.statements.WithLabelValues(verb, outcome).Inc()
}

// ObserveLRSRequest counts one LRS round trip and records its latency.
func (m *Manager) ObserveLRSRequest(method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.lrsRequests.WithLabelValues(method, outcome).Inc()
	m.lrsRequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// RecordReport counts one section report.
func (m *Manager) RecordReport(outcome string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(outcome).Inc()
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

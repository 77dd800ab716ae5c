// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load statuses.
const (
	StatusSuccess    = "success"
	StatusError      = "error"
	StatusSuperseded = "superseded"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Load metrics
	LoadsTotal    *prometheus.CounterVec
	LoadDuration  prometheus.Histogram
	FetchLatency  *prometheus.HistogramVec
	FetchErrors   *prometheus.CounterVec
	RecordsParsed *prometheus.CounterVec

	// Decision metrics
	VerdictsTotal *prometheus.CounterVec

	// Serving metrics
	AsksTotal          *prometheus.CounterVec
	WSClients          prometheus.Gauge
	LastSuccessfulLoad prometheus.Gauge
}

// NewMetrics registers all metrics with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "allocation_dashboard"
	}
	factory := promauto.With(reg)

	return &Metrics{
		LoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "loads_total",
			Help:      "Total number of period loads by status",
		}, []string{"status"}),
		LoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "load_duration_seconds",
			Help:      "Duration of one period load in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetch_latency_seconds",
			Help:      "Dataset fetch latency in seconds by source kind",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		FetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetch_errors_total",
			Help:      "Total number of failed dataset fetches by source kind",
		}, []string{"kind"}),
		RecordsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "records_parsed_total",
			Help:      "Total number of dataset records parsed by strategy",
		}, []string{"strategy"}),

		VerdictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decision",
			Name:      "verdicts_total",
			Help:      "Total number of verdicts by winner and reason",
		}, []string{"winner", "reason"}),

		AsksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ask",
			Name:      "questions_total",
			Help:      "Total number of questions by outcome",
		}, []string{"outcome"}),
		WSClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "websocket_clients",
			Help:      "Number of connected dashboard websocket clients",
		}),
		LastSuccessfulLoad: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_load_timestamp",
			Help:      "Unix timestamp of last applied dashboard",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// RecordLoad records a finished load.
func (m *Metrics) RecordLoad(status string, d time.Duration) {
	m.LoadsTotal.WithLabelValues(status).Inc()
	m.LoadDuration.Observe(d.Seconds())
	if status == StatusSuccess {
		m.LastSuccessfulLoad.SetToCurrentTime()
	}
}

// RecordFetch records one dataset fetch.
func (m *Metrics) RecordFetch(kind string, d time.Duration, err error) {
	m.FetchLatency.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		m.FetchErrors.WithLabelValues(kind).Inc()
	}
}

// RecordParsed adds n parsed records for strategy.
func (m *Metrics) RecordParsed(strategy string, n int) {
	m.RecordsParsed.WithLabelValues(strategy).Add(float64(n))
}

// RecordVerdict counts one verdict.
func (m *Metrics) RecordVerdict(winner, reason string) {
	m.VerdictsTotal.WithLabelValues(winner, reason).Inc()
}

// RecordAsk counts one question by outcome.
func (m *Metrics) RecordAsk(outcome string) {
	m.AsksTotal.WithLabelValues(outcome).Inc()
}

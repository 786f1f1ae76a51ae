// Package observability holds the Prometheus instrumentation shared by the
// daemon and the analysis services.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the analysis
// pipeline and the upstream data providers.
type Metrics struct {
	AnalysesRun      *prometheus.CounterVec // labels: kind, outcome={success,partial,error}
	AnalysisDuration *prometheus.HistogramVec

	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	CacheLookups     *prometheus.CounterVec   // labels: source, result={hit,miss}

	ReportsStored prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		AnalysesRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chargescope",
			Name:      "analyses_run_total",
			Help:      "Analyses executed by kind and outcome.",
		}, []string{"kind", "outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chargescope",
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end duration of one analysis, fetches included.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chargescope",
			Name:      "provider_requests_total",
			Help:      "Upstream data provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chargescope",
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}, []string{"provider"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chargescope",
			Name:      "provider_cache_lookups_total",
			Help:      "Provider cache lookups by source and result.",
		}, []string{"source", "result"}),
		ReportsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chargescope",
			Name:      "reports_stored_total",
			Help:      "Full report blobs written to object storage.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AnalysesRun,
		m.AnalysisDuration,
		m.ProviderRequests,
		m.ProviderDuration,
		m.CacheLookups,
		m.ReportsStored,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// lookup service.
type Metrics struct {
	// Lookup metrics.
	Lookups        *prometheus.CounterVec   // labels: operation={resolve,table}, outcome
	LookupDuration *prometheus.HistogramVec // labels: operation={resolve,table}

	// Reference source metrics.
	SourceFetches       *prometheus.CounterVec   // labels: source={github,local}, outcome={success,error}
	SourceFetchDuration *prometheus.HistogramVec // labels: source={github,local}
	DocCache            *prometheus.CounterVec   // labels: result={hit,miss}

	// Background refresh metrics.
	RefreshRunning prometheus.Gauge
	RefreshCycles  *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwls",
			Name:      "lookups_total",
			Help:      "Lookup operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gwls",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a complete lookup, including the document fetch and parse.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwls",
			Name:      "source_fetches_total",
			Help:      "Reference document fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gwls",
			Name:      "source_fetch_duration_seconds",
			Help:      "Reference document fetch duration in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		DocCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwls",
			Name:      "doc_cache_total",
			Help:      "Document cache lookups by result.",
		}, []string{"result"}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gwls",
			Name:      "refresh_running",
			Help:      "1 when the background refresher is active, 0 when shut down.",
		}),
		RefreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwls",
			Name:      "refresh_cycles_total",
			Help:      "Background refresh cycles by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.SourceFetches,
		m.SourceFetchDuration,
		m.DocCache,
		m.RefreshRunning,
		m.RefreshCycles,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Lookups:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "gwls", Name: "lookups_total"}, []string{"operation", "outcome"}),
		LookupDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "gwls", Name: "lookup_duration_seconds"}, []string{"operation"}),
		SourceFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "gwls", Name: "source_fetches_total"}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "gwls", Name: "source_fetch_duration_seconds"}, []string{"source"}),
		DocCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "gwls", Name: "doc_cache_total"}, []string{"result"}),
		RefreshRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "gwls", Name: "refresh_running"}),
		RefreshCycles:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "gwls", Name: "refresh_cycles_total"}, []string{"outcome"}),
	}
}

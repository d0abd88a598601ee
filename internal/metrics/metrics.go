package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the analytics backend.
type MetricsRegistry struct {
	// HTTP
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business
	ImportBatchesTotal     prometheus.CounterVec
	ImportRowsTotal        prometheus.CounterVec
	ReconciliationRuns     prometheus.CounterVec
	ReconciliationDuration prometheus.HistogramVec
	DegradedSourcesTotal   prometheus.CounterVec
	OverrideWritesTotal    prometheus.CounterVec
	GeocoderLookupsTotal   prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analitics_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "analitics_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_cache_hits_total",
				Help: "Cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_cache_misses_total",
				Help: "Cache misses by cache name",
			},
			[]string{"cache"},
		),
		ImportBatchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_import_batches_total",
				Help: "Upload batches processed by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		ImportRowsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_import_rows_total",
				Help: "Upload rows by kind and disposition (saved, skipped)",
			},
			[]string{"kind", "disposition"},
		),
		ReconciliationRuns: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_reconciliation_runs_total",
				Help: "Reconciliation computations by operation",
			},
			[]string{"operation"},
		),
		ReconciliationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analitics_reconciliation_duration_seconds",
				Help:    "Reconciliation computation time by operation",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		DegradedSourcesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_degraded_sources_total",
				Help: "Times a source store degraded a computation to an empty result",
			},
			[]string{"operation", "source"},
		),
		OverrideWritesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_override_writes_total",
				Help: "Manual override mutations by kind (set_add, set_remove, clear)",
			},
			[]string{"kind"},
		),
		GeocoderLookupsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analitics_geocoder_lookups_total",
				Help: "Geocoder lookups by outcome (hit, miss, error, invalid)",
			},
			[]string{"outcome"},
		),
	}
}

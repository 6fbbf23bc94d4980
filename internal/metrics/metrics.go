package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the path control service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Path lifecycle metrics
	PathsCreatedTotal   prometheus.Counter
	PathsDeletedTotal   prometheus.Counter
	PathsActivatedTotal prometheus.Counter
	PathsCompletedTotal prometheus.Counter

	// Engine metrics
	EngineTicksTotal prometheus.Counter
	ActiveRuns       prometheus.Gauge
	RunDuration      prometheus.Histogram

	// Telemetry cache metrics
	TelemetryCacheHits   prometheus.Counter
	TelemetryCacheMisses prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all
// metrics registered on the default registerer. Construct it once per
// process; the router owns the instance.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robodog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "robodog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "robodog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		PathsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_paths_created_total",
				Help: "Total paths saved through the facade",
			},
		),
		PathsDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_paths_deleted_total",
				Help: "Total paths removed through the facade",
			},
		),
		PathsActivatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_paths_activated_total",
				Help: "Total path activations, including re-activations",
			},
		),
		PathsCompletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_paths_completed_total",
				Help: "Total paths the robot walked to the end",
			},
		),

		EngineTicksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_engine_ticks_total",
				Help: "Total animation engine ticks processed",
			},
		),
		ActiveRuns: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "robodog_engine_active_runs",
				Help: "Running animations (0 or 1 by construction)",
			},
		),
		RunDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "robodog_engine_run_duration_seconds",
				Help:    "Wall-clock duration of completed path runs in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
			},
		),

		TelemetryCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_telemetry_cache_hits_total",
				Help: "Telemetry readbacks served from cache",
			},
		),
		TelemetryCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "robodog_telemetry_cache_misses_total",
				Help: "Telemetry readbacks with no cached entry",
			},
		),
	}
}

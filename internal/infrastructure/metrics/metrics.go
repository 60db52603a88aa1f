package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studywell"

// Metrics holds the application collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	taskMutations     *prometheus.CounterVec
	recordSubmissions *prometheus.CounterVec
	viewInvalidations *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	weatherFetches    *prometheus.CounterVec
	digestRuns        prometheus.Counter
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		taskMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "task_mutations_total",
				Help:      "Task writes by action",
			},
			[]string{"action"},
		),
		recordSubmissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "record_submissions_total",
				Help:      "Health and mood submissions",
			},
			[]string{"kind"},
		),
		viewInvalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "view_invalidations_total",
				Help:      "Cached view invalidations by view",
			},
			[]string{"view"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "view_cache_lookups_total",
				Help:      "View cache lookups by key kind and result",
			},
			[]string{"view", "result"},
		),
		weatherFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_fetches_total",
				Help:      "Upstream weather lookups by result",
			},
			[]string{"result"},
		),
		digestRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "digest_runs_total",
				Help:      "Completed daily digest runs",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.taskMutations,
		m.recordSubmissions,
		m.viewInvalidations,
		m.cacheLookups,
		m.weatherFetches,
		m.digestRuns,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) TaskMutated(action string) {
	m.taskMutations.WithLabelValues(action).Inc()
}

func (m *Metrics) RecordSubmitted(kind string) {
	m.recordSubmissions.WithLabelValues(kind).Inc()
}

func (m *Metrics) ViewInvalidated(view string) {
	m.viewInvalidations.WithLabelValues(view).Inc()
}

// CacheLookup records a hit or miss for view
func (m *Metrics) CacheLookup(view string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(view, result).Inc()
}

func (m *Metrics) WeatherFetched(result string) {
	m.weatherFetches.WithLabelValues(result).Inc()
}

func (m *Metrics) DigestRan() {
	m.digestRuns.Inc()
}

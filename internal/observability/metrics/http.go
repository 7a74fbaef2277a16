package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service registry: HTTP server metrics plus the
// ingestion pipeline counters.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	ingestRunsTotal     *prometheus.CounterVec
	ingestRunDuration   *prometheus.HistogramVec
	ingestProductsTotal *prometheus.CounterVec
	categoriesCreated   prometheus.Counter
	aiDegradationsTotal *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "catalog",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	ingestRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Total ingestion runs by mode and status.",
		},
		[]string{"service", "mode", "status"},
	)
	ingestRunDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "ingest",
			Name:      "run_duration_seconds",
			Help:      "Ingestion run duration in seconds by mode.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service", "mode"},
	)
	ingestProductsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "ingest",
			Name:      "products_total",
			Help:      "Total products by commit outcome.",
		},
		[]string{"service", "outcome"},
	)
	categoriesCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "ingest",
			Name:      "categories_created_total",
			Help:      "Total categories created by commit runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	aiDegradationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "ingest",
			Name:      "ai_degradations_total",
			Help:      "Runs that fell back to the deterministic classifier.",
		},
		[]string{"service", "mode"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		ingestRunsTotal,
		ingestRunDuration,
		ingestProductsTotal,
		categoriesCreated,
		aiDegradationsTotal,
	)

	return &Metrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		ingestRunsTotal:     ingestRunsTotal,
		ingestRunDuration:   ingestRunDuration,
		ingestProductsTotal: ingestProductsTotal,
		categoriesCreated:   categoriesCreated,
		aiDegradationsTotal: aiDegradationsTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

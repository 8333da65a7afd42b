// Package metrics exposes Prometheus instrumentation for the HTTP API, the
// storage provider, and analytics computations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slotscore"

type Metrics struct {
	registry *prometheus.Registry

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIActiveRequests  prometheus.Gauge

	StorageOpDuration *prometheus.HistogramVec
	StorageErrors     *prometheus.CounterVec

	AnalyticsComputations *prometheus.CounterVec
	SlotsLogged           prometheus.Counter
}

// New registers every collector on a fresh registry, plus the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		APIRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status_code"},
		),
		APIRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		APIActiveRequests: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "api_active_requests",
				Help:      "Current number of in-flight API requests",
			},
		),
		StorageOpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "storage_operation_duration_seconds",
				Help:      "Duration of storage provider calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		StorageErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_errors_total",
				Help:      "Total number of failed storage provider calls",
			},
			[]string{"operation"},
		),
		AnalyticsComputations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analytics_computations_total",
				Help:      "Total number of analytics results computed, by kind",
			},
			[]string{"kind"},
		),
		SlotsLogged: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slots_logged_total",
				Help:      "Total number of slot scores written",
			},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordAPIRequest(method, route string, status int, d time.Duration) {
	m.APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) RecordStorageOp(op string, d time.Duration, err error) {
	m.StorageOpDuration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		m.StorageErrors.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) RecordComputation(kind string) {
	m.AnalyticsComputations.WithLabelValues(kind).Inc()
}

// Middleware records request count, latency and in-flight gauge. Routes are
// labelled by chi pattern so path parameters don't explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.APIActiveRequests.Inc()
		defer m.APIActiveRequests.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}

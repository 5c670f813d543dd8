package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wonny/tradejournal/internal/analytics"
)

const namespace = "tradejournal"

// Compute kinds
const (
	KindComplete = "complete"
	KindAdvanced = "advanced"
)

// Metrics holds the Prometheus collectors of the service.
// nil *Metrics 는 no-op (METRICS_ENABLED=false)
// ⭐ SSOT: 메트릭 정의는 여기서만
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ComputeDuration *prometheus.HistogramVec
	Signals         *prometheus.CounterVec
	RateLimited     prometheus.Counter
}

// New creates collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code.",
			}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route"}),
		ComputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analytics_compute_duration_seconds",
				Help:      "Time spent loading a journal and computing a report.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			}, []string{"kind"}),
		Signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "overtrading_signals_total",
				Help:      "Overtrading signals emitted by advanced analytics.",
			}, []string{"type", "severity"}),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_rate_limited_total",
				Help:      "Requests rejected by the rate limiter.",
			}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.RequestDuration,
		m.ComputeDuration,
		m.Signals,
		m.RateLimited,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (tests)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveCompute records the duration of one analytics run
func (m *Metrics) ObserveCompute(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.ComputeDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordSignals counts overtrading signals by type and severity
func (m *Metrics) RecordSignals(signals []analytics.Signal) {
	if m == nil {
		return
	}
	for _, s := range signals {
		m.Signals.WithLabelValues(string(s.Type), string(s.Severity)).Inc()
	}
}

// IncRateLimited counts a rejected request
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rendered        *prometheus.CounterVec
	shares          *prometheus.CounterVec
	reorders        *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nexus_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	rendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_documents_rendered_total",
		Help: "PDF documents rendered by kind.",
	}, []string{"kind"})
	shares := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_share_tokens_issued_total",
		Help: "Share tokens created by kind.",
	}, []string{"kind"})
	reorders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_reorders_total",
		Help: "Collection reorders by collection and result.",
	}, []string{"collection", "result"})

	registry.MustRegister(requests, duration, rendered, shares, reorders)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		rendered:        rendered,
		shares:          shares,
		reorders:        reorders,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Instrument records request count and latency for one route.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) DocumentRendered(kind string) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(kind).Inc()
}

func (m *Metrics) ShareIssued(kind string) {
	if m == nil {
		return
	}
	m.shares.WithLabelValues(kind).Inc()
}

func (m *Metrics) Reordered(collection string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.reorders.WithLabelValues(collection, result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

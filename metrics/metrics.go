// Package metrics provides Prometheus metrics for the Buildsy API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the API. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// LLM metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec

	// Community metrics
	ProjectsCreatedTotal prometheus.Counter
	VotesTotal           *prometheus.CounterVec
	CommentsTotal        prometheus.Counter

	ServerStartTime time.Time
}

// New creates the metrics on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:        reg,
		ServerStartTime: time.Now(),
	}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buildsy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "buildsy_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "buildsy_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	m.LLMRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buildsy_llm_requests_total",
			Help: "Total number of LLM generations",
		},
		[]string{"context", "status"},
	)

	m.LLMRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "buildsy_llm_request_duration_seconds",
			Help:    "Duration of LLM generations in seconds",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60, 120},
		},
		[]string{"context"},
	)

	m.ProjectsCreatedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "buildsy_projects_created_total",
			Help: "Total number of projects created",
		},
	)

	m.VotesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buildsy_votes_total",
			Help: "Total number of votes cast, by outcome",
		},
		[]string{"action"},
	)

	m.CommentsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "buildsy_comments_total",
			Help: "Total number of comments posted",
		},
	)

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "buildsy_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.ServerStartTime).Seconds() },
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RecordHTTPRequest records a finished HTTP request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RequestStarted() {
	if m != nil {
		m.HTTPRequestsInFlight.Inc()
	}
}

func (m *Metrics) RequestFinished() {
	if m != nil {
		m.HTTPRequestsInFlight.Dec()
	}
}

// RecordLLMRequest records one generation for a context template
func (m *Metrics) RecordLLMRequest(context string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.LLMRequestsTotal.WithLabelValues(context, status).Inc()
	m.LLMRequestDuration.WithLabelValues(context).Observe(duration.Seconds())
}

func (m *Metrics) RecordProjectCreated() {
	if m != nil {
		m.ProjectsCreatedTotal.Inc()
	}
}

func (m *Metrics) RecordVote(action string) {
	if m != nil {
		m.VotesTotal.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) RecordComment() {
	if m != nil {
		m.CommentsTotal.Inc()
	}
}

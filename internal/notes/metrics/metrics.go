// Package metrics holds the prometheus collectors for the notes service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "notes"

// Label values for the outcome counters.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeReuse   = "reuse"
	OutcomeError   = "error"

	OutcomeStateMismatch  = "state_mismatch"
	OutcomeProviderFailed = "provider_failed"
)

// Sources of an issued token pair.
const (
	SourceLogin   = "login"
	SourceRefresh = "refresh"
	SourceOAuth   = "oauth"
)

// Metrics owns a registry so tests and multiple app instances never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	TokensIssued     *prometheus.CounterVec
	LoginAttempts    *prometheus.CounterVec
	RefreshAttempts  *prometheus.CounterVec
	OAuthCallbacks   *prometheus.CounterVec
	RefreshConflicts prometheus.Counter
	RefreshPruned    prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers every collector, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		TokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "tokens_issued_total",
			Help: "Token pairs issued, by source.",
		}, []string{"source"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "login_attempts_total",
			Help: "Password logins, by outcome.",
		}, []string{"outcome"}),
		RefreshAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "refresh_attempts_total",
			Help: "Refresh token rotations, by outcome.",
		}, []string{"outcome"}),
		OAuthCallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "oauth_callbacks_total",
			Help: "GitHub OAuth callbacks, by outcome.",
		}, []string{"outcome"}),
		RefreshConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "refresh_list_conflicts_total",
			Help: "Concurrent refresh token list writes that had to be retried.",
		}),
		RefreshPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "housekeeping", Name: "refresh_tokens_pruned_total",
			Help: "Expired refresh token entries removed by housekeeping.",
		}),

		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests, by route pattern and status code.",
		}, []string{"route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency, by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.TokensIssued,
		m.LoginAttempts,
		m.RefreshAttempts,
		m.OAuthCallbacks,
		m.RefreshConflicts,
		m.RefreshPruned,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency per route. It must sit inside
// any middleware that replaces the request, so the mux's pattern is visible
// once the handler returns.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(rw.status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

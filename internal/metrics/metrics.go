// Package metrics exposes Prometheus instrumentation for StarterKit.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and collectors for the application.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	authEvents   *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starterkit_http_requests_total",
				Help: "Total HTTP requests by method, route pattern and status code.",
			},
			[]string{"method", "route", "status"},
		),
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starterkit_auth_events_total",
				Help: "Authentication events by type and outcome.",
			},
			[]string{"event", "outcome"},
		),
	}

	registry.MustRegister(m.httpRequests, m.authEvents)
	return m
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// AuthEvent records an authentication event ("register", "login", "logout")
// with its outcome ("success", "failure").
func (m *Metrics) AuthEvent(event, outcome string) {
	m.authEvents.WithLabelValues(event, outcome).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

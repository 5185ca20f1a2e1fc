package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for session events.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics records session lifecycle events.
type Metrics struct {
	registry      *prometheus.Registry
	sessionEvents *prometheus.CounterVec
}

// New registers the session collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "panorama_auth",
		Name:      "session_events_total",
		Help:      "Session operations by outcome.",
	}, []string{"operation", "outcome"})
	registry.MustRegister(events)

	return &Metrics{registry: registry, sessionEvents: events}
}

// SessionEvent counts one operation with its outcome.
func (m *Metrics) SessionEvent(operation, outcome string) {
	m.sessionEvents.WithLabelValues(operation, outcome).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

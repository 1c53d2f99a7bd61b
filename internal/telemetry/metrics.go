// Package telemetry exports store actions to Prometheus and Sentry.
package telemetry

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/pmdash/internal/store"
)

// Metrics counts and times store actions.
type Metrics struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the store metrics on a fresh registry, together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmdash",
			Name:      "store_actions_total",
			Help:      "Store actions by outcome and data source.",
		}, []string{"store", "action", "outcome", "source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pmdash",
			Name:      "store_action_duration_seconds",
			Help:      "Store action latency, including fallback delays.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"store", "action"}),
	}
	reg.MustRegister(
		m.actions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements store.Observer.
func (m *Metrics) Observe(_ context.Context, ev store.Event) {
	outcome := "success"
	if !ev.Success {
		outcome = "failure"
	}
	m.actions.WithLabelValues(ev.Store, ev.Action, outcome, string(ev.Source)).Inc()
	m.duration.WithLabelValues(ev.Store, ev.Action).Observe(ev.Duration.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

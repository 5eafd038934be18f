package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	gatherer    prometheus.Gatherer
	Runs        *prometheus.CounterVec
	Steps       *prometheus.HistogramVec
	Transitions *prometheus.CounterVec
	InFlight    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to keep registrations isolated.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs",
			},
			[]string{"machine", "outcome"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Number of steps executed per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_transitions_total",
				Help: "Total number of applied transitions",
			},
			[]string{"machine"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "turing_runs_in_flight",
				Help: "Runs currently executing",
			},
			[]string{"machine"},
		),
	}
	reg.MustRegister(m.Runs, m.Steps, m.Transitions, m.InFlight)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			m.InFlight.WithLabelValues(e.Machine).Inc()
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Transitions.WithLabelValues(e.Machine).Inc()
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			m.InFlight.WithLabelValues(e.Machine).Dec()
			if e.Result == nil {
				return
			}
			m.Runs.WithLabelValues(e.Machine, string(e.Result.Outcome)).Inc()
			m.Steps.WithLabelValues(e.Machine).Observe(float64(e.Result.Steps))
		},
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

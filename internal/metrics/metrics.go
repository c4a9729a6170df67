// Package metrics exposes solver activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askiada/bigm"
)

// Outcome label values of bigm_solves_total.
const (
	OutcomeOptimal        = "optimal"
	OutcomeInvalid        = "invalid"
	OutcomeUnbounded      = "unbounded"
	OutcomeInfeasible     = "infeasible"
	OutcomeIterationLimit = "iteration_limit"
	OutcomeCanceled       = "canceled"
	OutcomeError          = "error"
)

// Metrics owns a dedicated registry holding the solver collectors and the Go runtime ones.
type Metrics struct {
	registry *prometheus.Registry

	Solves        *prometheus.CounterVec
	Pivots        prometheus.Counter
	SolvePivots   prometheus.Histogram
	SolveDuration prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		Solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigm_solves_total",
			Help: "Total number of solves by outcome",
		}, []string{"outcome"}),
		Pivots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bigm_pivots_total",
			Help: "Total number of pivots applied",
		}),
		SolvePivots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigm_solve_pivots",
			Help:    "Pivots per solve",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigm_solve_duration_seconds",
			Help:    "Solve latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Solves, m.Pivots, m.SolvePivots, m.SolveDuration)
	return m
}

// Hooks returns solver hooks recording into m.
func (m *Metrics) Hooks() bigm.Hooks {
	return bigm.Hooks{
		OnPivot: func(context.Context, bigm.PivotEvent) {
			m.Pivots.Inc()
		},
		OnSolved: func(_ context.Context, e bigm.SolvedEvent) {
			m.Solves.WithLabelValues(Outcome(e.Err)).Inc()
			m.SolveDuration.Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.SolvePivots.Observe(float64(e.Pivots))
			}
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry gives access to the underlying registry, e.g. to gather in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome classifies the error returned by a solve.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOptimal
	case errors.Is(err, bigm.ErrInvalidProblem):
		return OutcomeInvalid
	case errors.Is(err, bigm.ErrUnbounded):
		return OutcomeUnbounded
	case errors.Is(err, bigm.ErrInfeasible):
		return OutcomeInfeasible
	case errors.Is(err, bigm.ErrIterationLimit):
		return OutcomeIterationLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

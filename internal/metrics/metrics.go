// Package metrics exposes Prometheus instruments for the chart engine.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/starford/bodygraph/internal/apperr"
)

const namespace = "bodygraph"

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNoSolve  = "no_convergence"
	OutcomeInternal = "internal"
)

// Metrics records engine activity. A nil *Metrics records nothing.
type Metrics struct {
	requests         *prometheus.CounterVec
	designIterations prometheus.Histogram
	clampedCusps     prometheus.Counter
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Chart and house computations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		designIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "design_solver_iterations",
			Help:      "Iterations the design-time solver needed to converge.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
		clampedCusps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circumpolar_house_sets_total",
			Help:      "House computations where the semi-arc was clamped.",
		}),
	}
	reg.MustRegister(m.requests, m.designIterations, m.clampedCusps)
	return m
}

// Observe counts one computation of kind ("chart", "houses") with the
// outcome derived from err.
func (m *Metrics) Observe(kind string, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(kind, Outcome(err)).Inc()
}

// DesignSolved records the solver iteration count.
func (m *Metrics) DesignSolved(iterations int) {
	if m == nil {
		return
	}
	m.designIterations.Observe(float64(iterations))
}

// Circumpolar counts a clamped house computation.
func (m *Metrics) Circumpolar() {
	if m == nil {
		return
	}
	m.clampedCusps.Inc()
}

// Outcome maps an engine error onto its label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, apperr.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, apperr.ErrNoConvergence):
		return OutcomeNoSolve
	default:
		return OutcomeInternal
	}
}

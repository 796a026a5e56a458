// Package design finds the "design" moment: the instant at which the Sun
// stood 88° of ecliptic longitude before its birth position.
package design

import (
	"fmt"
	"math"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/apperr"
)

const (
	// Arc is the solar arc separating the design moment from birth.
	Arc = 88.0
	// MeanSolarRate is the Sun's mean daily motion in degrees.
	MeanSolarRate = 0.9856

	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 10
)

// SunSource provides the apparent solar longitude at a JDE.
type SunSource interface {
	SunLongitude(jde float64) float64
}

// Result is a converged design moment.
type Result struct {
	JDE        float64 `json:"jde"`
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"` // degrees, signed
}

// Option configures a Solver.
type Option func(*Solver)

// WithTolerance sets the convergence threshold in degrees.
func WithTolerance(deg float64) Option {
	return func(s *Solver) {
		if deg > 0 {
			s.tolerance = deg
		}
	}
}

// WithMaxIterations caps the number of correction steps.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// Solver is stateless between calls and safe for concurrent use.
type Solver struct {
	sun           SunSource
	tolerance     float64
	maxIterations int
}

// NewSolver creates a Solver reading solar longitudes from sun.
func NewSolver(sun SunSource, opts ...Option) *Solver {
	s := &Solver{
		sun:           sun,
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target returns the solar longitude the design moment must reach.
func Target(birthSun float64) float64 {
	return angle.Normalize(birthSun - Arc)
}

// Solve returns the JDE at which the Sun is exactly Arc degrees behind its
// longitude at birthJDE. It starts from the mean-motion estimate and applies
// Newton steps of Δλ/MeanSolarRate until |Δλ| drops below the tolerance.
func (s *Solver) Solve(birthJDE float64) (Result, error) {
	target := Target(s.sun.SunLongitude(birthJDE))
	jde := birthJDE - Arc/MeanSolarRate

	for i := 0; i <= s.maxIterations; i++ {
		diff := angle.Diff(target, s.sun.SunLongitude(jde))
		if math.Abs(diff) < s.tolerance {
			return Result{JDE: jde, Iterations: i, Residual: diff}, nil
		}
		if i == s.maxIterations {
			return Result{JDE: jde, Iterations: i, Residual: diff},
				fmt.Errorf("%w: design residual %.3g° after %d iterations", apperr.ErrNoConvergence, diff, i)
		}
		jde += diff / MeanSolarRate
	}
	// unreachable: the loop always returns on its last pass
	return Result{}, fmt.Errorf("%w: design solver exited without a result", apperr.ErrInternal)
}

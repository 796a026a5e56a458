// Package testutil provides shared test fixtures for the chart engine.
package testutil

import (
	"sync"
	"testing"

	"github.com/starford/bodygraph/internal/chartservice"
	"github.com/starford/bodygraph/internal/design"
	"github.com/starford/bodygraph/internal/ephemeris"
	"github.com/starford/bodygraph/internal/houses"
)

var ephemerisOnce = sync.OnceValue(ephemeris.New)

// Ephemeris returns a process-wide ephemeris service.
func Ephemeris(t testing.TB) *ephemeris.Service {
	t.Helper()
	return ephemerisOnce()
}

// ChartService returns a chart service with default solver settings.
func ChartService(t testing.TB) *chartservice.Service {
	t.Helper()
	eph := Ephemeris(t)
	return chartservice.NewService(eph, design.NewSolver(eph), houses.NewSolver(), chartservice.Defaults{})
}

// Float returns a pointer to v, for optional request fields.
func Float(v float64) *float64 { return &v }

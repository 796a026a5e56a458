// Package chartservice computes charts, house cusps and reference data from
// the engine packages.
package chartservice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/bodygraph"
	"github.com/starford/bodygraph/internal/checksum"
	"github.com/starford/bodygraph/internal/design"
	"github.com/starford/bodygraph/internal/ephemeris"
	"github.com/starford/bodygraph/internal/houses"
	"github.com/starford/bodygraph/internal/julian"
	"github.com/starford/bodygraph/internal/metrics"
	"github.com/starford/bodygraph/internal/models"
	"github.com/starford/bodygraph/internal/parser"
)

// Defaults fill fields a request leaves empty.
type Defaults struct {
	BirthTime string
	UTCOffset float64
}

// Service ties the ephemeris, the design solver and the house solver
// together. It keeps no per-request state and is safe for concurrent use.
type Service struct {
	eph      *ephemeris.Service
	design   *design.Solver
	houses   *houses.Solver
	defaults Defaults
	metrics  *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records every computation in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new chart service.
func NewService(eph *ephemeris.Service, ds *design.Solver, hs *houses.Solver, defaults Defaults, opts ...Option) *Service {
	if defaults.BirthTime == "" {
		defaults.BirthTime = "12:00"
	}
	s := &Service{eph: eph, design: ds, houses: hs, defaults: defaults}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chart computes the full chart for one set of birth data.
func (s *Service) Chart(_ context.Context, req models.ChartRequest) (*models.Chart, error) {
	chart, err := s.chart(req)
	s.metrics.Observe("chart", err)
	return chart, err
}

func (s *Service) chart(req models.ChartRequest) (*models.Chart, error) {
	if req.BirthTime == "" && !req.WantsHouses() {
		req.BirthTime = s.defaults.BirthTime
	}
	if req.UTCOffset == nil {
		off := s.defaults.UTCOffset
		req.UTCOffset = &off
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	civil, err := parser.Civil(req.BirthDate, req.BirthTime, *req.UTCOffset)
	if err != nil {
		return nil, err
	}
	birthJDE, err := julian.FromCivil(civil)
	if err != nil {
		return nil, err
	}

	solved, err := s.design.Solve(birthJDE)
	if err != nil {
		return nil, fmt.Errorf("design time for %s: %w", req.BirthDate, err)
	}
	s.metrics.DesignSolved(solved.Iterations)
	slog.Debug("design time solved",
		slog.Float64("jde", solved.JDE),
		slog.Int("iterations", solved.Iterations),
		slog.Float64("residual", solved.Residual))

	personality, err := s.activations(birthJDE)
	if err != nil {
		return nil, err
	}
	des, err := s.activations(solved.JDE)
	if err != nil {
		return nil, err
	}

	def, err := bodygraph.Analyze(unionGates(personality, des))
	if err != nil {
		return nil, err
	}

	chart := &models.Chart{
		BirthJDE:         birthJDE,
		DesignJDE:        solved.JDE,
		DesignDate:       julian.DateString(solved.JDE),
		Personality:      personality,
		Design:           des,
		AllGates:         nonNilSlice(def.Gates),
		DefinedChannels:  nonNilSlice(def.Channels),
		DefinedCenters:   nonNilSlice(def.Defined),
		UndefinedCenters: nonNilSlice(def.Undefined),
		IncarnationCross: incarnationCross(personality, des),
		Archetype: bodygraph.Classify(def,
			personality[ephemeris.Sun].Line, des[ephemeris.Sun].Line),
	}

	if req.WantsHouses() {
		hc, err := s.houses.Cusps(birthJDE, *req.Latitude, *req.Longitude)
		if err != nil {
			return nil, err
		}
		if hc.Circumpolar {
			s.metrics.Circumpolar()
			slog.Warn("house cusps clamped near the pole",
				slog.Float64("latitude", *req.Latitude),
				slog.Any("cusps", hc.ClampedCusps))
		}
		chart.Houses = &hc
		chart.PlanetHouses = make(map[ephemeris.Body]int, len(personality))
		for body, act := range personality {
			chart.PlanetHouses[body] = hc.HouseOf(act.Longitude)
		}
	}

	chart.ChartID = fingerprint(chart)
	return chart, nil
}

// Houses computes Placidus cusps for an explicit JDE or a civil moment.
func (s *Service) Houses(_ context.Context, req models.HouseRequest) (*houses.HouseCusps, error) {
	hc, err := s.cusps(req)
	s.metrics.Observe("houses", err)
	if err == nil && hc.Circumpolar {
		s.metrics.Circumpolar()
	}
	return hc, err
}

func (s *Service) cusps(req models.HouseRequest) (*houses.HouseCusps, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var jde float64
	if req.JDE != nil {
		jde = *req.JDE
	} else {
		offset := s.defaults.UTCOffset
		if req.UTCOffset != nil {
			offset = *req.UTCOffset
		}
		civil, err := parser.Civil(req.Date, req.Time, offset)
		if err != nil {
			return nil, err
		}
		if jde, err = julian.FromCivil(civil); err != nil {
			return nil, err
		}
	}

	hc, err := s.houses.Cusps(jde, *req.Latitude, *req.Longitude)
	if err != nil {
		return nil, err
	}
	return &hc, nil
}

// Gate describes one gate of the wheel.
func (s *Service) Gate(gate int) (*models.GateInfo, error) {
	start, err := bodygraph.GateStart(gate)
	if err != nil {
		return nil, err
	}
	center, err := bodygraph.CenterOf(gate)
	if err != nil {
		return nil, err
	}
	return &models.GateInfo{
		Gate:     gate,
		Center:   center,
		Start:    start,
		End:      angle.Normalize(start + bodygraph.GateSpan),
		Partners: nonNilSlice(bodygraph.Partners(gate)),
	}, nil
}

// Centers lists the nine centers with their gates.
func (s *Service) Centers() []models.CenterInfo {
	out := make([]models.CenterInfo, len(bodygraph.Centers))
	for i, c := range bodygraph.Centers {
		out[i] = models.CenterInfo{Center: c, Motor: bodygraph.IsMotor(c), Gates: bodygraph.GatesOf(c)}
	}
	return out
}

func (s *Service) activations(jde float64) (map[ephemeris.Body]models.BodyActivation, error) {
	lons, err := s.eph.Longitudes(jde)
	if err != nil {
		return nil, err
	}
	out := make(map[ephemeris.Body]models.BodyActivation, len(lons))
	for _, bl := range lons {
		out[bl.Body] = models.BodyActivation{
			Activation: bodygraph.GateAt(bl.Longitude),
			Longitude:  bl.Longitude,
			Placement:  houses.SignOf(bl.Longitude),
		}
	}
	return out, nil
}

func unionGates(sets ...map[ephemeris.Body]models.BodyActivation) []int {
	var gates []int
	for _, set := range sets {
		for _, act := range set {
			gates = append(gates, act.Gate)
		}
	}
	slices.Sort(gates)
	return slices.Compact(gates)
}

// incarnationCross formats the Sun and Earth gates of both sides as
// "pSun/pEarth | dSun/dEarth".
func incarnationCross(personality, des map[ephemeris.Body]models.BodyActivation) string {
	return fmt.Sprintf("%d/%d | %d/%d",
		personality[ephemeris.Sun].Gate, personality[ephemeris.Earth].Gate,
		des[ephemeris.Sun].Gate, des[ephemeris.Earth].Gate)
}

// fingerprint hashes the activations in body order, plus the angles when
// houses were computed.
func fingerprint(c *models.Chart) string {
	parts := make([]string, 0, 2*len(ephemeris.Bodies)+1)
	for _, side := range []struct {
		tag string
		set map[ephemeris.Body]models.BodyActivation
	}{{"p", c.Personality}, {"d", c.Design}} {
		for _, b := range ephemeris.Bodies {
			parts = append(parts, fmt.Sprintf("%s %s %s", side.tag, b, side.set[b].Activation))
		}
	}
	if c.Houses != nil {
		parts = append(parts, fmt.Sprintf("asc %.4f mc %.4f", c.Houses.Ascendant, c.Houses.Midheaven))
	}
	return checksum.ID(parts...)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

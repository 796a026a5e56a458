// Package houses divides the ecliptic into twelve Placidus houses for a
// moment and a place on Earth.
package houses

import (
	"fmt"
	"math"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/julian"
)

const (
	DefaultMaxIterations = 30
	DefaultTolerance     = 1e-4
)

// HouseCusps holds the angles and the twelve cusps, Cusps[0] being house 1.
//
// Circumpolar is set when the semi-arc equation left its domain for at
// least one intermediate cusp and was clamped. The cusps are still finite
// but the affected ones (listed in ClampedCusps) are degenerate.
type HouseCusps struct {
	Ascendant    float64     `json:"asc"`
	Midheaven    float64     `json:"mc"`
	ImumCoeli    float64     `json:"ic"`
	Descendant   float64     `json:"dc"`
	Cusps        [12]float64 `json:"cusps"`
	RAMC         float64     `json:"ramc"`
	Obliquity    float64     `json:"obliquity"`
	Circumpolar  bool        `json:"circumpolar"`
	ClampedCusps []int       `json:"clampedCusps,omitempty"`
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations caps the fixed-point iterations per cusp.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// WithTolerance sets the per-cusp convergence threshold in degrees.
func WithTolerance(deg float64) Option {
	return func(s *Solver) {
		if deg > 0 {
			s.tolerance = deg
		}
	}
}

// Solver computes Placidus cusps. It holds only configuration.
type Solver struct {
	maxIterations int
	tolerance     float64
}

// NewSolver returns a Solver with default iteration limits.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{maxIterations: DefaultMaxIterations, tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Obliquity is the mean obliquity of the ecliptic in degrees.
func Obliquity(jde float64) float64 {
	return 23.4392911 - 0.0130042*julian.Centuries(jde)
}

// SiderealTime is Greenwich mean sidereal time in degrees.
func SiderealTime(jde float64) float64 {
	d := jde - julian.J2000
	t := d / 36525
	return angle.Normalize(280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000)
}

// Cusps computes the houses for latitude (north positive) and longitude
// (east positive), both in degrees.
func (s *Solver) Cusps(jde, latitude, longitude float64) (HouseCusps, error) {
	if math.IsNaN(latitude) || latitude <= -90 || latitude >= 90 {
		return HouseCusps{}, fmt.Errorf("%w: latitude %v", apperr.ErrInvalidInput, latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return HouseCusps{}, fmt.Errorf("%w: longitude %v", apperr.ErrInvalidInput, longitude)
	}

	eps := Obliquity(jde)
	ramc := angle.Normalize(SiderealTime(jde) + longitude)

	mc := angle.Atan2(angle.Sin(ramc), angle.Cos(ramc)*angle.Cos(eps))
	asc := angle.Atan2(angle.Cos(ramc), -(angle.Sin(ramc)*angle.Cos(eps) + angle.Tan(latitude)*angle.Sin(eps)))

	hc := HouseCusps{
		Ascendant:  asc,
		Midheaven:  mc,
		ImumCoeli:  angle.Opposite(mc),
		Descendant: angle.Opposite(asc),
		RAMC:       ramc,
		Obliquity:  eps,
	}

	intermediate := []struct {
		house     int
		fraction  float64
		nocturnal bool
	}{
		{11, 1.0 / 3, false},
		{12, 2.0 / 3, false},
		{2, 1.0 / 3, true},
		{3, 2.0 / 3, true},
	}
	solved := make(map[int]float64, len(intermediate))
	for _, ic := range intermediate {
		lon, clamped := s.intermediate(ramc, eps, latitude, ic.fraction, ic.nocturnal)
		solved[ic.house] = lon
		if clamped {
			hc.Circumpolar = true
			hc.ClampedCusps = append(hc.ClampedCusps, ic.house)
		}
	}

	hc.Cusps = [12]float64{
		asc,
		solved[2],
		solved[3],
		hc.ImumCoeli,
		angle.Opposite(solved[11]),
		angle.Opposite(solved[12]),
		hc.Descendant,
		angle.Opposite(solved[2]),
		angle.Opposite(solved[3]),
		mc,
		solved[11],
		solved[12],
	}
	return hc, nil
}

// intermediate solves one cusp by fixed-point iteration on
//
//	RA(λ) = RAMC + f·DSA(δ(λ))                  above the horizon
//	RA(λ) = RAMC + 180 − (1−f)·NSA(δ(λ))        below the horizon
//
// where NSA = 180 − DSA. The arc-cosine argument of the semi-arc is clamped
// to [-1,1]; clamped reports whether that happened on any pass.
func (s *Solver) intermediate(ramc, eps, lat, f float64, nocturnal bool) (lon float64, clamped bool) {
	target := func(dsa float64) float64 {
		if nocturnal {
			return ramc + 180 - (1-f)*(180-dsa)
		}
		return ramc + f*dsa
	}

	lon = raToLongitude(target(90), eps)
	for range s.maxIterations {
		decl := angle.Deg(math.Asin(angle.Sin(eps) * angle.Sin(lon)))
		dsa, c := semiArc(lat, decl)
		clamped = clamped || c
		next := raToLongitude(target(dsa), eps)
		done := math.Abs(angle.Diff(next, lon)) < s.tolerance
		lon = next
		if done {
			break
		}
	}
	return lon, clamped
}

// semiArc is the diurnal semi-arc in degrees for a declination.
func semiArc(lat, decl float64) (float64, bool) {
	x := -angle.Tan(lat) * angle.Tan(decl)
	clamped := false
	if x > 1 {
		x, clamped = 1, true
	} else if x < -1 {
		x, clamped = -1, true
	}
	return angle.Deg(math.Acos(x)), clamped
}

// raToLongitude converts right ascension of a point on the ecliptic to its
// ecliptic longitude.
func raToLongitude(ra, eps float64) float64 {
	return angle.Atan2(angle.Sin(ra), angle.Cos(ra)*angle.Cos(eps))
}

// HouseOf returns the house (1..12) containing longitude. Every longitude
// maps to exactly one house; a house whose start cusp is numerically
// larger than its end cusp wraps through 0°.
func (hc *HouseCusps) HouseOf(longitude float64) int {
	lon := angle.Normalize(longitude)
	for i := range hc.Cusps {
		start, end := hc.Cusps[i], hc.Cusps[(i+1)%len(hc.Cusps)]
		if start <= end {
			if lon >= start && lon < end {
				return i + 1
			}
		} else if lon >= start || lon < end {
			return i + 1
		}
	}
	return 1
}

// Package ephemeris computes apparent geocentric ecliptic longitudes of the
// tracked bodies at a Julian Ephemeris Date.
//
// A Service is built once per process and then shared by every request.
// Nothing inside it is mutated after New returns, so it is safe for any
// number of concurrent readers.
package ephemeris

import (
	"fmt"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/julian"
)

// Body names a tracked celestial body or point.
type Body string

const (
	Sun       Body = "Sun"
	Earth     Body = "Earth"
	Moon      Body = "Moon"
	NorthNode Body = "NorthNode"
	SouthNode Body = "SouthNode"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	Uranus    Body = "Uranus"
	Neptune   Body = "Neptune"
	Pluto     Body = "Pluto"
)

// Bodies lists the 13 tracked bodies in display order.
var Bodies = []Body{
	Sun, Earth, Moon, NorthNode, SouthNode,
	Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
}

// BodyLongitude is a body's ecliptic longitude in degrees, [0,360).
type BodyLongitude struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
}

// Service evaluates the body series. Build it with New.
type Service struct {
	earth   vsopBody
	moon    []lunarTerm
	planets map[Body]elements
}

// New loads every coefficient table into a read-only Service.
func New() *Service {
	planets := make(map[Body]elements, len(planetElements))
	for b, el := range planetElements {
		planets[b] = el
	}
	moon := make([]lunarTerm, len(lunarLongitude))
	copy(moon, lunarLongitude)

	return &Service{
		earth:   vsopBody{l: earthL, b: earthB, r: earthR},
		moon:    moon,
		planets: planets,
	}
}

// epoch caches the quantities shared by every body at one instant.
type epoch struct {
	t        float64 // Julian centuries from J2000
	nutation float64 // nutation in longitude, degrees
	earthL   float64 // heliocentric, radians
	earthB   float64
	earthR   float64
}

func (s *Service) epochAt(jde float64) epoch {
	t := julian.Centuries(jde)
	l, b, r := s.earth.position(julian.Millennia(jde))
	return epoch{t: t, nutation: nutationInLongitude(t), earthL: l, earthB: b, earthR: r}
}

// SunLongitude returns the apparent geocentric longitude of the Sun.
func (s *Service) SunLongitude(jde float64) float64 {
	return s.sun(s.epochAt(jde))
}

// Longitude returns the longitude of a single body.
func (s *Service) Longitude(body Body, jde float64) (float64, error) {
	return s.longitude(body, s.epochAt(jde))
}

// Longitudes returns all tracked bodies at jde, in Bodies order.
func (s *Service) Longitudes(jde float64) ([]BodyLongitude, error) {
	ep := s.epochAt(jde)
	out := make([]BodyLongitude, 0, len(Bodies))
	for _, b := range Bodies {
		lon, err := s.longitude(b, ep)
		if err != nil {
			return nil, err
		}
		out = append(out, BodyLongitude{Body: b, Longitude: lon})
	}
	return out, nil
}

func (s *Service) longitude(body Body, ep epoch) (float64, error) {
	switch body {
	case Sun:
		return s.sun(ep), nil
	case Earth:
		return angle.Opposite(s.sun(ep)), nil
	case Moon:
		return angle.Normalize(moonLongitude(s.moon, ep.t) + ep.nutation), nil
	case NorthNode:
		return meanNode(ep.t), nil
	case SouthNode:
		return angle.Opposite(meanNode(ep.t)), nil
	}
	el, ok := s.planets[body]
	if !ok {
		return 0, fmt.Errorf("%w: no series for body %q", apperr.ErrInternal, body)
	}
	return s.planet(&el, ep), nil
}

// sun converts the Earth's heliocentric position into the apparent
// geocentric solar longitude (FK5 frame correction, nutation, aberration).
func (s *Service) sun(ep epoch) float64 {
	theta := angle.Deg(ep.earthL) + 180
	theta -= angle.Arcsec(0.09033)
	aberration := angle.Arcsec(20.4898) / ep.earthR
	return angle.Normalize(theta + ep.nutation - aberration)
}

// planet differences the body's and the Earth's heliocentric vectors on
// the ecliptic plane. Latitude only enters through its cosine projection.
func (s *Service) planet(el *elements, ep epoch) float64 {
	lon, lat, r := el.heliocentric(ep.t)
	lon += precession(ep.t)

	rc := r * angle.Cos(lat)
	x := rc * angle.Cos(lon)
	y := rc * angle.Sin(lon)

	erc := ep.earthR * angle.Cos(angle.Deg(ep.earthB))
	el0 := angle.Deg(ep.earthL)
	x -= erc * angle.Cos(el0)
	y -= erc * angle.Sin(el0)

	return angle.Normalize(angle.Atan2(y, x) + ep.nutation)
}

// meanNode is the longitude of the Moon's mean ascending node.
func meanNode(t float64) float64 {
	t2 := t * t
	return angle.Normalize(125.0445479 - 1934.1362891*t + 0.0020754*t2 + t2*t/467441 - t2*t2/60616000)
}

// nutationInLongitude is the low-precision Δψ in degrees.
func nutationInLongitude(t float64) float64 {
	omega := 125.04452 - 1934.136261*t
	ls := 280.4665 + 36000.7698*t
	lm := 218.3165 + 481267.8813*t
	arcsec := -17.20*angle.Sin(omega) - 1.32*angle.Sin(2*ls) - 0.23*angle.Sin(2*lm) + 0.21*angle.Sin(2*omega)
	return angle.Arcsec(arcsec)
}

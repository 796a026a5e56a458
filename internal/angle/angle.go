// Package angle holds degree-based trigonometry helpers shared by the
// ephemeris, house and gate-wheel code.
package angle

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Normalize maps any angle in degrees into [0,360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Diff returns the signed shortest arc from b to a, in [-180,180).
func Diff(a, b float64) float64 {
	d := Normalize(a - b)
	if d >= 180 {
		d -= 360
	}
	return d
}

// Opposite returns the longitude 180° away.
func Opposite(deg float64) float64 {
	return Normalize(deg + 180)
}

func Rad(deg float64) float64 { return deg * degToRad }
func Deg(rad float64) float64 { return rad * radToDeg }

func Sin(deg float64) float64 { return math.Sin(deg * degToRad) }
func Cos(deg float64) float64 { return math.Cos(deg * degToRad) }
func Tan(deg float64) float64 { return math.Tan(deg * degToRad) }

// Atan2 returns atan2(y, x) in degrees, normalized to [0,360).
func Atan2(y, x float64) float64 {
	return Normalize(math.Atan2(y, x) * radToDeg)
}

// Arcsec converts arc-seconds to degrees.
func Arcsec(s float64) float64 { return s / 3600 }

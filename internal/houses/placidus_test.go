package houses

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/julian"
)

var solver = NewSolver()

func TestSiderealTime_Reference(t *testing.T) {
	// 1987-04-10 0h UT: 13h10m46.3668s.
	assert.InDelta(t, 197.693195, SiderealTime(2446895.5), 1e-5)
}

func TestObliquityAtJ2000(t *testing.T) {
	assert.InDelta(t, 23.4392911, Obliquity(julian.J2000), 1e-12)
}

func TestCusps_OppositionInvariants(t *testing.T) {
	for jde := 2440000.5; jde < 2460000.5; jde += 1234.567 {
		for lat := -60.0; lat <= 60; lat += 15 {
			for _, lon := range []float64{-122.4, 0, 13.4, 151.2} {
				hc, err := solver.Cusps(jde, lat, lon)
				require.NoError(t, err)

				c := hc.Cusps
				assert.InDelta(t, 0, angle.Diff(c[0], hc.Ascendant), 1e-9)
				assert.InDelta(t, 0, angle.Diff(c[9], hc.Midheaven), 1e-9)
				assert.InDelta(t, 0, angle.Diff(c[3], angle.Opposite(c[9])), 1e-3)
				assert.InDelta(t, 0, angle.Diff(c[6], angle.Opposite(c[0])), 1e-3)
				for _, pair := range [][2]int{{5, 11}, {6, 12}, {8, 2}, {9, 3}} {
					a, b := c[pair[0]-1], c[pair[1]-1]
					assert.InDelta(t, 180, math.Abs(angle.Diff(a, b)), 1e-3, "H%d/H%d", pair[0], pair[1])
				}
				for i, cusp := range c {
					assert.GreaterOrEqual(t, cusp, 0.0, "cusp %d", i+1)
					assert.Less(t, cusp, 360.0, "cusp %d", i+1)
				}
			}
		}
	}
}

func TestCusps_AscendingOrderAtModerateLatitudes(t *testing.T) {
	for jde := 2447893.0; jde < 2447894.0; jde += 1.0 / 24 {
		hc, err := solver.Cusps(jde, 51.5, -0.1)
		require.NoError(t, err)
		var total float64
		for i := range hc.Cusps {
			arc := angle.Normalize(hc.Cusps[(i+1)%12] - hc.Cusps[i])
			total += arc
		}
		assert.InDelta(t, 360, total, 1e-6, "cusps out of order at %v: %v", jde, hc.Cusps)
		assert.False(t, hc.Circumpolar)
	}
}

func TestCusps_SatisfySemiArcEquation(t *testing.T) {
	hc, err := solver.Cusps(2451545.0, 45, 7.5)
	require.NoError(t, err)
	eps := hc.Obliquity

	check := func(lon, f float64, nocturnal bool) {
		t.Helper()
		ra := angle.Atan2(angle.Sin(lon)*angle.Cos(eps), angle.Cos(lon))
		decl := angle.Deg(math.Asin(angle.Sin(eps) * angle.Sin(lon)))
		dsa, _ := semiArc(45, decl)
		want := hc.RAMC + f*dsa
		if nocturnal {
			want = hc.RAMC + 180 - (1-f)*(180-dsa)
		}
		assert.InDelta(t, 0, angle.Diff(ra, want), 1e-3)
	}
	check(hc.Cusps[10], 1.0/3, false)
	check(hc.Cusps[11], 2.0/3, false)
	check(hc.Cusps[1], 1.0/3, true)
	check(hc.Cusps[2], 2.0/3, true)
}

func TestCusps_EquatorNeverClamps(t *testing.T) {
	for jde := 2451545.0; jde < 2451546.0; jde += 1.0 / 48 {
		hc, err := solver.Cusps(jde, 0, 0)
		require.NoError(t, err)
		assert.False(t, hc.Circumpolar, "clamped at %v", jde)
		assert.Empty(t, hc.ClampedCusps)
		// Equal semi-arcs put the Ascendant a quarter turn of RA past the MC.
		assert.InDelta(t, 90, math.Abs(angle.Diff(hc.Cusps[0], hc.Cusps[9])), 6)
	}
}

func TestCusps_CircumpolarClampIsReported(t *testing.T) {
	var clamped int
	for jde := 2451545.0; jde < 2451546.0; jde += 1.0 / 24 {
		hc, err := solver.Cusps(jde, 85, 0)
		require.NoError(t, err)
		for i, cusp := range hc.Cusps {
			require.False(t, math.IsNaN(cusp) || math.IsInf(cusp, 0), "cusp %d not finite", i+1)
			assert.GreaterOrEqual(t, cusp, 0.0)
			assert.Less(t, cusp, 360.0)
		}
		if hc.Circumpolar {
			clamped++
			assert.NotEmpty(t, hc.ClampedCusps)
		}
	}
	assert.Positive(t, clamped, "latitude 85° never triggered the clamp")
}

func TestCusps_InvalidCoordinates(t *testing.T) {
	for _, c := range [][2]float64{{90, 0}, {-90, 0}, {10, 181}, {math.NaN(), 0}} {
		_, err := solver.Cusps(julian.J2000, c[0], c[1])
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("Cusps(lat=%v, lon=%v) err = %v, want ErrInvalidInput", c[0], c[1], err)
		}
	}
}

func TestAngles_Equator(t *testing.T) {
	// With RAMC = 0 on the equator the MC is 0° Aries and the Ascendant 0° Cancer.
	jde := julian.J2000
	lon := -SiderealTime(jde)
	if lon < -180 {
		lon += 360
	}
	hc, err := solver.Cusps(jde, 0, lon)
	require.NoError(t, err)
	assert.InDelta(t, 0, angle.Diff(hc.Midheaven, 0), 1e-6)
	assert.InDelta(t, 0, angle.Diff(hc.Ascendant, 90), 1e-6)
}

func TestHouseOf_Total(t *testing.T) {
	for _, lat := range []float64{0, 40, -35, 85} {
		hc, err := solver.Cusps(2447893.0, lat, 10)
		require.NoError(t, err)
		for lon := 0.0; lon < 360; lon += 0.25 {
			h := hc.HouseOf(lon)
			assert.True(t, h >= 1 && h <= 12, "HouseOf(%v) = %d", lon, h)
		}
	}
}

func TestHouseOf_CuspStartsHouse(t *testing.T) {
	hc, err := solver.Cusps(2447893.0, 40.7, -74)
	require.NoError(t, err)
	for i, cusp := range hc.Cusps {
		assert.Equal(t, i+1, hc.HouseOf(cusp+1e-7), "just past cusp %d", i+1)
	}
}

func TestHouseOf_Wraparound(t *testing.T) {
	hc := HouseCusps{Cusps: [12]float64{350, 20, 50, 80, 110, 140, 170, 200, 230, 260, 290, 320}}
	assert.Equal(t, 1, hc.HouseOf(355))
	assert.Equal(t, 1, hc.HouseOf(5))
	assert.Equal(t, 2, hc.HouseOf(20))
	assert.Equal(t, 12, hc.HouseOf(349.9))

	var degenerate HouseCusps
	assert.Equal(t, 1, degenerate.HouseOf(123))
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, Placement{Sign: "Aries", Degree: 0}, SignOf(0))
	p := SignOf(223.25)
	assert.Equal(t, Sign("Scorpio"), p.Sign)
	assert.InDelta(t, 13.25, p.Degree, 1e-9)
	assert.Equal(t, Sign("Pisces"), SignOf(-0.5).Sign)
}

package ephemeris

import (
	"math"

	"github.com/starford/bodygraph/internal/angle"
)

// elements are mean orbital elements at J2000 and their rates per Julian
// century, referred to the mean ecliptic and equinox of J2000
// (a in AU, angles in degrees).
type elements struct {
	a, aDot         float64
	e, eDot         float64
	incl, inclDot   float64
	meanL, meanLDot float64
	peri, periDot   float64 // longitude of perihelion
	node, nodeDot   float64 // longitude of ascending node
	anomaly         anomalyTerms
}

// anomalyTerms corrects the outer planets' mean anomaly:
// M += b·T² + c·cos(f·T) + s·sin(f·T), with f·T in degrees.
type anomalyTerms struct {
	b, c, s, f float64
}

func (at anomalyTerms) at(t float64) float64 {
	return at.b*t*t + at.c*angle.Cos(at.f*t) + at.s*angle.Sin(at.f*t)
}

// Secular Keplerian elements, valid 3000 BC to 3000 AD.
var planetElements = map[Body]elements{
	Mercury: {a: 0.38709843, aDot: 0, e: 0.20563661, eDot: 0.00002123, incl: 7.00559432, inclDot: -0.00590158, meanL: 252.25166724, meanLDot: 149472.67486623, peri: 77.45771895, periDot: 0.15940013, node: 48.33961819, nodeDot: -0.12214182},
	Venus:   {a: 0.72332102, aDot: -0.00000026, e: 0.00676399, eDot: -0.00005107, incl: 3.39777545, inclDot: 0.00043494, meanL: 181.97970850, meanLDot: 58517.81560260, peri: 131.76755713, periDot: 0.05679648, node: 76.67261496, nodeDot: -0.27274174},
	Mars:    {a: 1.52371243, aDot: 0.00000097, e: 0.09336511, eDot: 0.00009149, incl: 1.85181869, inclDot: -0.00724757, meanL: -4.56813164, meanLDot: 19140.29934243, peri: -23.91744784, periDot: 0.45223625, node: 49.71320984, nodeDot: -0.26852431},
	Jupiter: {a: 5.20248019, aDot: -0.00002864, e: 0.04853590, eDot: 0.00018026, incl: 1.29861416, inclDot: -0.00322699, meanL: 34.33479152, meanLDot: 3034.90371757, peri: 14.27495244, periDot: 0.18199196, node: 100.29282654, nodeDot: 0.13024619,
		anomaly: anomalyTerms{b: -0.00012452, c: 0.06064060, s: -0.35635438, f: 38.35125000}},
	Saturn: {a: 9.54149883, aDot: -0.00003065, e: 0.05550825, eDot: -0.00032044, incl: 2.49424102, inclDot: 0.00451969, meanL: 50.07571329, meanLDot: 1222.11494724, peri: 92.86136063, periDot: 0.54179478, node: 113.63998702, nodeDot: -0.25015002,
		anomaly: anomalyTerms{b: 0.00025899, c: -0.13434469, s: 0.87320147, f: 38.35125000}},
	Uranus: {a: 19.18797948, aDot: -0.00020455, e: 0.04685740, eDot: -0.00001550, incl: 0.77298127, inclDot: -0.00180155, meanL: 314.20276625, meanLDot: 428.49512595, peri: 172.43404441, periDot: 0.09266985, node: 73.96250215, nodeDot: 0.05739699,
		anomaly: anomalyTerms{b: 0.00058331, c: -0.97731848, s: 0.17689245, f: 7.67025000}},
	Neptune: {a: 30.06952752, aDot: 0.00006447, e: 0.00895439, eDot: 0.00000818, incl: 1.77005520, inclDot: 0.00022400, meanL: 304.22289287, meanLDot: 218.46515314, peri: 46.68158724, periDot: 0.01009938, node: 131.78635853, nodeDot: -0.00606302,
		anomaly: anomalyTerms{b: -0.00041348, c: 0.68346318, s: -0.10162547, f: 7.67025000}},
	Pluto: {a: 39.48686035, aDot: 0.00449751, e: 0.24885238, eDot: 0.00006016, incl: 17.14104260, inclDot: 0.00000501, meanL: 238.96535011, meanLDot: 145.18042903, peri: 224.09702598, periDot: -0.00968827, node: 110.30167986, nodeDot: -0.00809981,
		anomaly: anomalyTerms{b: -0.01262724}},
}

// heliocentric returns ecliptic longitude (deg, J2000), latitude (deg) and
// radius (AU) for the elements at T centuries from J2000.
func (el *elements) heliocentric(t float64) (lon, lat, r float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	incl := angle.Rad(el.incl + el.inclDot*t)
	meanL := el.meanL + el.meanLDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	argPeri := angle.Rad(peri - node)
	nodeRad := angle.Rad(node)
	m := angle.Rad(angle.Diff(meanL, peri) + el.anomaly.at(t))

	ecc := solveKepler(m, e)
	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(nodeRad), math.Sin(nodeRad)
	ci, si := math.Cos(incl), math.Sin(incl)

	x := (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y := (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z := (sw*si)*xp + (cw*si)*yp

	r = math.Sqrt(x*x + y*y + z*z)
	lon = angle.Atan2(y, x)
	lat = angle.Deg(math.Atan2(z, math.Hypot(x, y)))
	return lon, lat, r
}

// solveKepler solves E - e·sin E = M for the eccentric anomaly (radians).
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for range 30 {
		delta := (m - (ecc - e*math.Sin(ecc))) / (1 - e*math.Cos(ecc))
		ecc += delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// precession returns the general precession in longitude (deg) accumulated
// from J2000 to T centuries.
func precession(t float64) float64 {
	return angle.Arcsec(5029.0966*t + 1.11113*t*t)
}

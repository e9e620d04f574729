// Package astro provides the spherical-astronomy helpers behind chart
// rendering: tangent-plane projection, angular separation, and
// sexagesimal coordinate formatting.
package astro

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// RadecToLM projects equatorial coordinates onto the tangent plane at the
// field centre using the orthographic (sin) projection. The result (l, m)
// is dimensionless, in radians for small offsets; l grows towards
// increasing RA and m towards increasing declination.
func RadecToLM(ra, dec, raCentre, decCentre float64) (l, m float64) {
	dra := ra - raCentre
	l = math.Cos(dec) * math.Sin(dra)
	m = math.Sin(dec)*math.Cos(decCentre) - math.Cos(dec)*math.Sin(decCentre)*math.Cos(dra)
	return l, m
}

// AngularDistance returns the great-circle separation in radians between
// two equatorial positions.
func AngularDistance(ra1, dec1, ra2, dec2 float64) float64 {
	p := s2.LatLng{Lat: s1.Angle(dec1), Lng: s1.Angle(ra1)}
	q := s2.LatLng{Lat: s1.Angle(dec2), Lng: s1.Angle(ra2)}
	return float64(p.Distance(q))
}

// DirectionDDec returns the angle, in the (l, m) plane, of the direction of
// increasing declination at the given position. Zero at the field centre
// (north is up); used to rotate catalog position angles into the map frame.
func DirectionDDec(ra, dec, raCentre, decCentre float64) float64 {
	dra := ra - raCentre
	dl := -math.Sin(dec) * math.Sin(dra)
	dm := math.Cos(dec)*math.Cos(decCentre) + math.Sin(dec)*math.Sin(decCentre)*math.Cos(dra)
	return math.Atan2(dl, dm)
}

// RAToHMS splits a right ascension in radians into hours, minutes and
// rounded seconds, carrying overflow so that 23h59m60s becomes 0h0m0s.
func RAToHMS(ra float64) (h, m, s int) {
	hours := ra * 12 / math.Pi
	h = int(hours)
	m = int((hours - float64(h)) * 60)
	s = int(((hours-float64(h))*60-float64(m))*60 + 0.5)
	if s == 60 {
		m++
		s = 0
	}
	if m == 60 {
		h++
		m = 0
	}
	if h == 24 {
		h = 0
	}
	return h, m, s
}

// DecToDMS splits a declination in radians into a sign, degrees, minutes
// and rounded seconds.
func DecToDMS(dec float64) (negative bool, d, m, s int) {
	negative = dec < 0
	deg := math.Abs(dec) * 180 / math.Pi
	d = int(deg)
	m = int((deg - float64(d)) * 60)
	s = int(((deg-float64(d))*60-float64(m))*60 + 0.5)
	if s == 60 {
		m++
		s = 0
	}
	if m == 60 {
		m = 0
	}
	return negative, d, m, s
}

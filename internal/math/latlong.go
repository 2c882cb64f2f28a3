// internal/math/latlong.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// NMPerLatitude is the number of nautical miles per degree of latitude;
// this is constant (unlike longitude, which depends on the latitude).
const NMPerLatitude = 60

// Point2LL is a (longitude, latitude) pair, in that order to match the
// conventional (x,y) ordering used throughout the geometry code.
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 { return p[0] }
func (p Point2LL) Latitude() float32  { return p[1] }

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

func Add2LL(a, b Point2LL) Point2LL {
	return Point2LL{a[0] + b[0], a[1] + b[1]}
}

func Sub2LL(a, b Point2LL) Point2LL {
	return Point2LL{a[0] - b[0], a[1] - b[1]}
}

// NMPerLongitude returns the number of nautical miles per degree of
// longitude at the given latitude (degrees), i.e. NMPerLatitude*cos(lat).
func NMPerLongitude(lat float32) float32 {
	return NMPerLatitude * Cos(Radians(lat))
}

// NMDistance2LL returns the distance in nautical miles between two
// positions, using the mean of the two latitudes to scale longitude (a
// flat-earth approximation valid over the short ranges relevant to
// conflict geometry).
func NMDistance2LL(a, b Point2LL) float32 {
	meanLat := 0.5 * (a.Latitude() + b.Latitude())
	d := LL2NM(Sub2LL(a, b), NMPerLongitude(meanLat))
	return Length2f(d)
}

// NM2LL converts a displacement in nautical miles (east, north) into a
// Point2LL displacement, given the number of nautical miles per degree of
// longitude at the relevant latitude.
func NM2LL(p [2]float32, nmPerLongitude float32) Point2LL {
	return Point2LL{p[0] / nmPerLongitude, p[1] / NMPerLatitude}
}

// LL2NM converts a Point2LL displacement into nautical miles (east, north).
func LL2NM(p Point2LL, nmPerLongitude float32) [2]float32 {
	return [2]float32{p[0] * nmPerLongitude, p[1] * NMPerLatitude}
}

// PointLineDistance returns the minimum distance from the point p to the
// infinite line defined by (p0, p1), all given in nm-space coordinates.
func PointLineDistance(p, p0, p1 [2]float32) float32 {
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	sq := dx*dx + dy*dy
	if sq == 0 {
		return Infinity
	}
	d := (dx*(p0[1]-p[1]) - dy*(p0[0]-p[0])) / Sqrt(sq)
	return Abs(d)
}

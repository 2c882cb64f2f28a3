// internal/math/heading.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// HeadingDifference returns the minimum difference between two headings,
// i.e. the result is always in the range [0,180].
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedHeadingDifference returns the short-arc signed angle from b to a,
// in (-180,180].
func SignedHeadingDifference(a, b float32) float32 {
	d := Mod(a-b+180, 360) - 180
	if d <= -180 {
		d += 360
	}
	return d
}

// Reduces h to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		h = 360 - NormalizeHeading(-h)
		if h >= 360 {
			h -= 360
		}
		return h
	}
	return Mod(h, 360)
}

// Heading2LL returns the heading from the point |from| to the point |to|
// in degrees, applying the given magnetic correction.
func Heading2LL(from, to Point2LL, nmPerLongitude float32, magCorrection float32) float32 {
	v := [2]float32{to[0] - from[0], to[1] - from[1]}
	angle := Degrees(Atan2(v[0]*nmPerLongitude, v[1]*NMPerLatitude))
	return NormalizeHeading(angle + magCorrection)
}

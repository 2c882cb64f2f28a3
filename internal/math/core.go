// internal/math/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Mathematical Constants
const (
	Pi         = gomath.Pi
	PiOver2    = 1.57079632679489661923
	PiOver4    = 0.78539816339744830961
	FourOverPi = 1.27323949337005615234375
)

var Infinity float32 = float32(gomath.Inf(1))

// FloatToBits converts a float32 to its bit representation.
func FloatToBits(f float32) uint32 {
	return gomath.Float32bits(f)
}

// BitsToFloat converts a bit representation to float32.
func BitsToFloat(ui uint32) float32 {
	return gomath.Float32frombits(ui)
}

// Exponent returns the exponent of a float32.
func Exponent(v float32) int {
	return int(FloatToBits(v)>>23) - 127
}

func Floor(v float32) float32 {
	return float32(gomath.Floor(float64(v)))
}

// Degrees converts an angle expressed in radians to degrees.
func Degrees(r float32) float32 {
	return r * 180 / Pi
}

// Radians converts an angle expressed in degrees to radians.
func Radians(d float32) float32 {
	return d / 180 * Pi
}

func Sqrt(a float32) float32 {
	return float32(gomath.Sqrt(float64(a)))
}

func Mod(a, b float32) float32 {
	return float32(gomath.Mod(float64(a), float64(b)))
}

// Sign returns 1 if v > 0, -1 if v < 0, or 0 if v == 0.
func Sign(v float32) float32 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

// Abs returns the absolute value of x.
func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

// Clamp restricts x to the range [low, high].
func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Lerp performs linear interpolation between a and b using factor x in [0,1].
func Lerp(x, a, b float32) float32 {
	return (1-x)*a + x*b
}

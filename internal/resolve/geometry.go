// internal/resolve/geometry.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import "math"

// Vec3 is an (east, north, vertical) velocity or displacement in the
// local tangent-plane coordinates the geometry kernel works in.
type Vec3 struct {
	East, North, Vert float64
}

func sub3(a, b Vec3) Vec3 {
	return Vec3{a.East - b.East, a.North - b.North, a.Vert - b.Vert}
}

func add3(a, b Vec3) Vec3 {
	return Vec3{a.East + b.East, a.North + b.North, a.Vert + b.Vert}
}

func scale3(a Vec3, s float64) Vec3 {
	return Vec3{a.East * s, a.North * s, a.Vert * s}
}

// PairGeometry is the per-pair input to the MVP geometry kernel (§4.A).
type PairGeometry struct {
	Qdr  float64 // degrees, bearing from own to intruder
	Dist float64 // metres, slant range
	Tcpa float64 // seconds, may be negative during intrusion
	TLOS float64 // seconds, time to loss of separation

	V1, V2 Vec3 // ownship, intruder velocity (east, north, vs)

	Alt1, Alt2 float64 // metres

	RpzM float64 // effective horizontal protected radius, metres
	HpzM float64 // effective vertical protected half-thickness, metres

	DtLookahead float64 // seconds
}

// MVP is the geometry kernel's output: the full velocity change that
// would unilaterally resolve the pair, and the vertical solve time used
// by the aggregator's timesolveV reduction.
type MVP struct {
	Dv    Vec3
	TsolV float64
}

// ResolvePair runs the MVP geometry kernel on a single conflict pair. It
// never fails: head-on and zero-relative-velocity edge cases are
// resolved locally via the guards described below, matching the
// resolver's no-exception-path error model.
func ResolvePair(g PairGeometry) MVP {
	qr := g.Qdr * math.Pi / 180
	drel := Vec3{
		East:  math.Sin(qr) * g.Dist,
		North: math.Cos(qr) * g.Dist,
		Vert:  g.Alt2 - g.Alt1,
	}
	vrel := sub3(g.V2, g.V1)

	dcpa := add3(drel, scale3(vrel, g.Tcpa))
	dabsH := math.Hypot(dcpa.East, dcpa.North)

	iH := g.RpzM - dabsH

	drelxyLen := math.Hypot(drel.East, drel.North)

	// Head-on guard: CPA miss distance collapses to (near) zero, so the
	// lateral direction implied by dcpa is undefined. Synthesize a
	// perpendicular miss from the current relative position instead.
	if dabsH <= headOnMinMiss {
		dabsH = headOnMinMiss
		if drelxyLen > 0 {
			// rotate drel_xy by 90 degrees and scale to length headOnMinMiss
			dcpa.East = -drel.North / drelxyLen * headOnMinMiss
			dcpa.North = drel.East / drelxyLen * headOnMinMiss
		} else {
			dcpa.East = headOnMinMiss
			dcpa.North = 0
		}
		iH = g.RpzM - dabsH
	}

	// Grazing correction: intruder currently outside the horizontal PZ,
	// but the predicted CPA lies inside it -- scale the target miss
	// distance so the resolved trajectory tangents the PZ.
	target := g.RpzM
	if g.RpzM < g.Dist && dabsH < g.Dist {
		erratum := math.Cos(math.Asin(g.RpzM/g.Dist) - math.Asin(dabsH/g.Dist))
		target = g.RpzM / erratum
		iH = target - dabsH
	}

	absTcpa := math.Abs(g.Tcpa)
	var dvx, dvy float64
	if absTcpa > 0 && dabsH > 0 {
		dvx = iH * dcpa.East / (absTcpa * dabsH)
		dvy = iH * dcpa.North / (absTcpa * dabsH)
	}

	// Vertical block.
	var tsolV float64
	var iV float64
	if vrel.Vert != 0 {
		tsolV = math.Abs(drel.Vert / vrel.Vert)
	} else {
		tsolV = g.TLOS
	}
	if tsolV > g.DtLookahead {
		tsolV = g.TLOS
		iV = g.HpzM
	} else if vrel.Vert != 0 {
		iV = g.HpzM
	} else {
		iV = g.HpzM - math.Abs(drel.Vert)
	}

	var dvz float64
	if tsolV > 0 {
		if vrel.Vert != 0 {
			sign := 1.0
			if vrel.Vert > 0 {
				sign = -1.0
			}
			dvz = (iV / tsolV) * sign
		} else {
			dvz = iV / tsolV
		}
	}

	return MVP{Dv: Vec3{East: dvx, North: dvy, Vert: dvz}, TsolV: tsolV}
}

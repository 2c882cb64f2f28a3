// internal/resolve/geometry_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import (
	"math"
	"testing"
)

func nmToM(nm float64) float64 { return nm * 1852 }
func ftToM(ft float64) float64 { return ft * 0.3048 }

// S1 -- head-on: two aircraft 5 NM apart, opposing tracks 090/270, TAS
// 250 m/s, same altitude, rpz=5NM, hpz=1000ft, tcpa=18.5s.
func TestHeadOnScenario(t *testing.T) {
	rpz := nmToM(5)
	hpz := ftToM(1000)

	v1 := Vec3{East: 250, North: 0}  // track 090
	v2 := Vec3{East: -250, North: 0} // track 270

	g := PairGeometry{
		Qdr:         90,
		Dist:        rpz,
		Tcpa:        18.5,
		// A large tLOS with zero vertical closure rate drives dv_z toward
		// zero (hpz_m/tLOS); both aircraft are level, so there's no
		// vertical closure to resolve.
		TLOS:        1e6,
		V1:          v1,
		V2:          v2,
		Alt1:        10000,
		Alt2:        10000,
		RpzM:        rpz,
		HpzM:        hpz,
		DtLookahead: 300,
	}

	mvp := ResolvePair(g)

	if math.Abs(mvp.Dv.Vert) > 1e-3 {
		t.Errorf("expected near-zero vertical component for co-altitude head-on, got %f", mvp.Dv.Vert)
	}
	mag := math.Hypot(mvp.Dv.East, mvp.Dv.North)
	if mag <= 0 {
		t.Errorf("expected non-zero horizontal resolution, got %f", mag)
	}
}

// Universal property 2: head-on determinism -- a pair whose predicted
// CPA miss collapses to (near) zero still produces a well-defined,
// non-zero lateral resolution.
func TestHeadOnDeterminism(t *testing.T) {
	g := PairGeometry{
		Qdr:         0,
		Dist:        1000,
		Tcpa:        5,
		TLOS:        10,
		V1:          Vec3{East: 0, North: 100},
		V2:          Vec3{East: 0, North: -100},
		RpzM:        500,
		HpzM:        300,
		DtLookahead: 100,
	}
	mvp := ResolvePair(g)
	mag := math.Hypot(mvp.Dv.East, mvp.Dv.North)
	if mag <= 0 {
		t.Fatalf("expected non-zero resolution vector for head-on case, got %f", mag)
	}
}

// Universal property 1: separation progress -- applying the full dv_mvp
// for one unit of tcpa should bring the horizontal miss to ~rpz_m. Dist
// is kept smaller than RpzM (the grazing correction needs rpz_m < dist)
// and the predicted miss is far above the head-on threshold, so neither
// engages, isolating the core formula.
func TestSeparationProgress(t *testing.T) {
	g := PairGeometry{
		Qdr:         90,
		Dist:        800,
		Tcpa:        10,
		TLOS:        10,
		V1:          Vec3{East: 0, North: 0},
		V2:          Vec3{East: 0, North: 100},
		RpzM:        1000,
		HpzM:        300,
		DtLookahead: 300,
	}
	mvp := ResolvePair(g)

	qr := g.Qdr * math.Pi / 180
	drel := Vec3{East: math.Sin(qr) * g.Dist, North: math.Cos(qr) * g.Dist}
	vrel := Vec3{East: g.V2.East - g.V1.East, North: g.V2.North - g.V1.North}

	// Ownship applies the full dv to its own velocity; from the
	// intruder's perspective the relative velocity changes by +dv (own
	// velocity decreases by dv, so vrel = v2-v1 increases by dv).
	newVrel := Vec3{East: vrel.East + mvp.Dv.East, North: vrel.North + mvp.Dv.North}
	newDcpa := Vec3{
		East:  drel.East + newVrel.East*g.Tcpa,
		North: drel.North + newVrel.North*g.Tcpa,
	}
	miss := math.Hypot(newDcpa.East, newDcpa.North)
	if math.Abs(miss-g.RpzM) > 1e-6*g.RpzM+1e-3 {
		t.Errorf("expected resolved miss distance ~= rpz_m (%f), got %f", g.RpzM, miss)
	}
}

// S4 -- vertical-only conflict: same lat/lon, 500ft vertical separation,
// vs_own=+10, vs_intr=-10, hpz=1000ft.
func TestVerticalOnlyScenario(t *testing.T) {
	hpz := ftToM(1000)
	g := PairGeometry{
		Qdr:         0,
		Dist:        0,
		Tcpa:        0,
		TLOS:        40,
		V1:          Vec3{Vert: 10},
		V2:          Vec3{Vert: -10},
		Alt1:        0,
		Alt2:        -ftToM(500),
		RpzM:        1,
		HpzM:        hpz,
		DtLookahead: 300,
	}
	mvp := ResolvePair(g)
	// dv_mvp is subtracted from the faster-climbing aircraft (own, here
	// climbing at +10 vs the intruder's -10 descent) when applied
	// unilaterally, so a positive dv_z here means own's post-resolution
	// vs (own.VS - dv_z) drops below its current climb rate.
	if mvp.Dv.Vert <= 0 {
		t.Errorf("expected positive dv_z (subtracted from the faster-climbing aircraft), got %f", mvp.Dv.Vert)
	}
	newOwnVS := g.V1.Vert - mvp.Dv.Vert
	if newOwnVS >= g.V1.Vert {
		t.Errorf("expected own's climb rate to be reduced, got new vs %f from %f", newOwnVS, g.V1.Vert)
	}
}

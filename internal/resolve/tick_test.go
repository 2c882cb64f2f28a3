// internal/resolve/tick_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import (
	"testing"

	"github.com/mmp/vice-cr/internal/traffic"
)

func nmConflictPair(own, intr string, qdr, distNM, tcpa, tlos float64) *traffic.ConflictPairs {
	return &traffic.ConflictPairs{
		Own: []string{own}, Intr: []string{intr},
		Qdr: []float64{qdr}, Dist: []float64{distNM * 1852}, Tcpa: []float64{tcpa}, TLOS: []float64{tlos},
		Rpz:         map[string]float64{own: 5 * 1852, intr: 5 * 1852},
		Hpz:         map[string]float64{own: 304.8, intr: 304.8},
		DtLookahead: 300,
	}
}

// Universal property 4: horizontal-only mode -- output vs equals input
// vs for every aircraft, and output altitude equals selalt unless
// swvsact is true.
func TestHorizontalOnlyModePreservesVS(t *testing.T) {
	r := newTestResolver()
	r.RMETHH("ON")
	r.RMETHV("OFF")

	r.Register("OWN")
	r.Register("INTR")

	own := baseAC("OWN", 0, 0, 10000, 90, 250)
	own.VS = 3
	intr := baseAC("INTR", 0, 0.1, 10000, 270, 250)
	intr.VS = -4

	cp := nmConflictPair("OWN", "INTR", 90, 5, 18.5, 18.5)
	cmds := r.Tick([]traffic.State{own, intr}, cp, 1.0)

	for _, c := range cmds {
		var in traffic.State
		if c.ACID == "OWN" {
			in = own
		} else {
			in = intr
		}
		if c.VS != in.VS {
			t.Errorf("%s: expected vs unchanged in horizontal-only mode, got %f want %f", c.ACID, c.VS, in.VS)
		}
		if !r.swvsact[r.index[c.ACID]] && c.AltTarget != in.SelAlt {
			t.Errorf("%s: expected alt target = selalt in horizontal-only mode, got %f want %f", c.ACID, c.AltTarget, in.SelAlt)
		}
	}
}

// Universal property 3: priority symmetry -- under FF1 with priority ON,
// a mirror-image conflict (equal and opposite geometry, equal vs)
// produces horizontal dv_own = -dv_intr when both are visited as ownship
// in their respective pairs. The vertical components are not compared:
// for a co-altitude level pair the kernel gives both aircraft the same
// dv_z.
func TestPrioritySymmetryFF1(t *testing.T) {
	r := newTestResolver()
	r.PRIORULES("ON", "FF1")

	r.Register("A")
	r.Register("B")

	a := baseAC("A", 0, 0, 10000, 90, 250)
	b := baseAC("B", 0, 0.1, 10000, 270, 250)

	// Symmetric conflict list: both (A,B) and (B,A) appear, with mirrored
	// bearings, matching the detector's convention of reporting each
	// ordered pair once per ownship.
	cp := &traffic.ConflictPairs{
		Own: []string{"A", "B"}, Intr: []string{"B", "A"},
		Qdr:  []float64{90, 270},
		Dist: []float64{5 * 1852, 5 * 1852},
		Tcpa: []float64{18.5, 18.5},
		TLOS: []float64{18.5, 18.5},
		Rpz:  map[string]float64{"A": 5 * 1852, "B": 5 * 1852},
		Hpz:  map[string]float64{"A": 304.8, "B": 304.8},
		DtLookahead: 300,
	}

	r.aggregate(tickSnapshot{ac: []traffic.State{a, b}, conflicts: cp, asasDt: 1.0})

	ia, ib := r.index["A"], r.index["B"]
	dvA, dvB := r.dv[ia], r.dv[ib]
	const eps = 1e-6
	if absf(dvA.East+dvB.East) > eps || absf(dvA.North+dvB.North) > eps {
		t.Errorf("expected dv_A = -dv_B for symmetric conflict, got dvA=%+v dvB=%+v", dvA, dvB)
	}
}

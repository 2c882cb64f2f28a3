// internal/resolve/recovery_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import (
	"testing"

	"github.com/mmp/vice-cr/internal/traffic"
)

// S6 -- bouncing conflict: nearly-parallel tracks (088/090), hdist just
// inside rpz. With ResoFacH at 1 a pair inside rpz is also a
// horizontal-LOS breach, and own's 088 autopilot track converges on the
// intruder, so criterion 1 fails as well; the test checks that such a
// pair is retained and both aircraft stay active.
func TestBouncingConflictRetained(t *testing.T) {
	r := newTestResolver()
	r.Register("OWN")
	r.Register("INTR")

	// 1 degree of latitude is ~111km; offset chosen so hdist is just
	// inside a 1000m rpz.
	own := baseAC("OWN", 0, 0, 10000, 88, 200)
	own.APTrack, own.APTAS = 88, 200
	intr := baseAC("INTR", 0.008, 0, 10000, 90, 200)
	intr.APTrack, intr.APTAS = 90, 200

	cp := &traffic.ConflictPairs{
		Own: []string{"OWN"}, Intr: []string{"INTR"},
		Qdr: []float64{0}, Dist: []float64{900}, Tcpa: []float64{20}, TLOS: []float64{20},
		Rpz: map[string]float64{"OWN": 1000, "INTR": 1000}, Hpz: map[string]float64{"OWN": 300, "INTR": 300},
		DtLookahead: 300,
	}

	r.recover(tickSnapshot{ac: []traffic.State{own, intr}, conflicts: cp, asasDt: 1.0})

	if !r.resopairs[Pair{Own: "OWN", Intr: "INTR"}] {
		t.Errorf("expected bouncing-conflict pair to be retained in resopairs")
	}
	if !r.active[r.index["OWN"]] || !r.active[r.index["INTR"]] {
		t.Errorf("expected both aircraft in a retained pair to remain active")
	}
}

// Universal property 5: free-to-revert idempotence -- once a pair is
// removed from resopairs, re-running recovery with the same inputs
// leaves active unchanged.
func TestFreeToRevertIdempotent(t *testing.T) {
	r := newTestResolver()
	r.Register("OWN")
	r.Register("INTR")

	own := baseAC("OWN", 0, 0, 10000, 0, 200)
	own.APTrack, own.APTAS = 0, 200
	intr := baseAC("INTR", 1, 1, 10000, 180, 200) // far away, passes ~111 km abeam
	intr.APTrack, intr.APTAS = 180, 200

	cp := &traffic.ConflictPairs{
		Own: []string{"OWN"}, Intr: []string{"INTR"},
		Qdr: []float64{45}, Dist: []float64{50000}, Tcpa: []float64{5}, TLOS: []float64{5},
		Rpz: map[string]float64{"OWN": 1000, "INTR": 1000}, Hpz: map[string]float64{"OWN": 300, "INTR": 300},
		DtLookahead: 300,
	}

	snap := tickSnapshot{ac: []traffic.State{own, intr}, conflicts: cp, asasDt: 1.0}
	r.recover(snap)
	if r.resopairs[Pair{Own: "OWN", Intr: "INTR"}] {
		t.Fatalf("expected a pair whose CPA miss is far outside rpz to be released from resopairs")
	}
	activeAfterFirst := append([]bool(nil), r.active...)

	r.recover(snap)
	for i := range r.active {
		if r.active[i] != activeAfterFirst[i] {
			t.Errorf("re-running recovery changed active[%d] from %v to %v", i, activeAfterFirst[i], r.active[i])
		}
	}
}

// S5 -- criterion 1 fails, criterion 2 passes: the intruder's current
// velocity would close on ownship's autopilot track, but its velocity
// at the moment the pair was first observed would not. Criterion 2
// alone passing must not be enough to release the pair; free requires
// both.
func TestCriterion1FailsCriterion2PassesRetainsPair(t *testing.T) {
	r := newTestResolver()
	r.Register("OWN")
	r.Register("INTR")

	own := baseAC("OWN", 0, 0, 10000, 90, 200)
	own.APTrack, own.APTAS = 90, 200

	// intr starts out about 890 m east of own, inside the 1000 m rpz, and
	// moving the same direction as own (parallel, not closing). The
	// horizontal-LOS guard keeps the pair open on the opening tick, and
	// this parallel velocity is recorded as its init snapshot.
	intrOpening := baseAC("INTR", 0, 0.008, 10000, 90, 200)

	cp := &traffic.ConflictPairs{
		Own: []string{"OWN"}, Intr: []string{"INTR"},
		Qdr: []float64{90}, Dist: []float64{1112}, Tcpa: []float64{10}, TLOS: []float64{10},
		Rpz: map[string]float64{"OWN": 1000, "INTR": 1000}, Hpz: map[string]float64{"OWN": 300, "INTR": 300},
		DtLookahead: 300,
	}

	r.recover(tickSnapshot{ac: []traffic.State{own, intrOpening}, conflicts: cp, asasDt: 1.0})
	if !r.resopairs[Pair{Own: "OWN", Intr: "INTR"}] {
		t.Fatalf("expected pair to be opened on first observation")
	}

	// Second tick: intr is about 1112 m east (outside rpz, so no LOS) and
	// has turned to close directly on own's autopilot track. Its current
	// velocity (criterion 1) now fails the CPA test; its snapshotted
	// opening velocity (criterion 2) still passes.
	intrNow := baseAC("INTR", 0, 0.01, 10000, 270, 200)
	r.recover(tickSnapshot{ac: []traffic.State{own, intrNow}, conflicts: cp, asasDt: 1.0})

	if !r.resopairs[Pair{Own: "OWN", Intr: "INTR"}] {
		t.Errorf("expected pair to be retained when criterion 1 fails even though criterion 2 passes")
	}
	if !r.active[r.index["OWN"]] || !r.active[r.index["INTR"]] {
		t.Errorf("expected both aircraft to remain active while the pair is retained")
	}
}

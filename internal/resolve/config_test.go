// internal/resolve/config_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import "testing"

func TestRMETHHDefaultsAndEcho(t *testing.T) {
	r := newTestResolver()
	ok, msg := r.RMETHH("")
	if !ok {
		t.Fatalf("echo should always succeed")
	}
	if !r.ResoHoriz || r.ResoSpd || r.ResoHdg || r.ResoVert {
		t.Errorf("unexpected default switches: %+v", r.Switches)
	}
	if msg != "RMETHH is BOTH" {
		t.Errorf("echo = %q, want %q (neither sub-switch set resolves both track and speed, same as BOTH)", msg, "RMETHH is BOTH")
	}
}

func TestRMETHHForcesVerticalOff(t *testing.T) {
	r := newTestResolver()
	r.RMETHV("ON")
	if !r.ResoVert {
		t.Fatalf("expected vertical mode on")
	}
	ok, _ := r.RMETHH("ON")
	if !ok {
		t.Fatalf("RMETHH ON should succeed")
	}
	if r.ResoVert {
		t.Errorf("RMETHH ON should force vertical off")
	}
}

func TestRMETHVForcesHorizontalOff(t *testing.T) {
	r := newTestResolver()
	ok, _ := r.RMETHV("ON")
	if !ok || !r.ResoVert {
		t.Fatalf("RMETHV ON should enable vertical resolution")
	}
	if r.ResoHoriz || r.ResoSpd || r.ResoHdg {
		t.Errorf("RMETHV ON should force the horizontal group off, got %+v", r.Switches)
	}
}

func TestRMETHHRejectsUnknownArgument(t *testing.T) {
	r := newTestResolver()
	if ok, _ := r.RMETHH("BOGUS"); ok {
		t.Errorf("expected RMETHH to reject an unknown argument")
	}
}

func TestPriorulesUnknownCodeRejected(t *testing.T) {
	r := newTestResolver()
	ok, _ := r.PRIORULES("ON", "NOTACODE")
	if ok {
		t.Errorf("expected PRIORULES to reject an unknown priority code")
	}
	if r.Switches.Prio {
		t.Errorf("rejecting an unknown code must not enable priority")
	}
}

func TestNoresoAndResooffToggleIdempotently(t *testing.T) {
	r := newTestResolver()
	r.Register("AAL1")

	if ok, _ := r.NORESO("AAL1"); !ok {
		t.Fatalf("NORESO should succeed")
	}
	if !r.noresoac["AAL1"] {
		t.Errorf("expected AAL1 flagged noreso")
	}
	r.NORESO("AAL1")
	if r.noresoac["AAL1"] {
		t.Errorf("expected second NORESO call to toggle the flag back off")
	}

	r.RESOOFF("AAL1")
	if !r.resooffac["AAL1"] {
		t.Errorf("expected AAL1 flagged resooff")
	}
}

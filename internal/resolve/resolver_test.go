// internal/resolve/resolver_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import (
	"math"
	"testing"

	"github.com/mmp/vice-cr/internal/traffic"
)

type noWind struct{}

func (noWind) GetWindVector(lat, lon, alt float64) (float64, float64) { return 0, 0 }

type passthroughLimiter struct{}

func (passthroughLimiter) Limits(acid string, tas, vs, alt, ax float64) (float64, float64, float64) {
	return tas, vs, alt
}

type fakeRoute struct {
	directed map[string]string
}

func newFakeRoute() *fakeRoute { return &fakeRoute{directed: make(map[string]string)} }

func (f *fakeRoute) ActiveWaypoint(acid string) (string, bool) { return "WPT1", true }
func (f *fakeRoute) Direct(acid, wp string)                    { f.directed[acid] = wp }

func newTestResolver() *Resolver {
	return New(noWind{}, passthroughLimiter{}, newFakeRoute(), nil)
}

// Universal property 6: array-resize invariance -- after N creates and M
// deletes, every per-aircraft column stays aligned with the live set.
func TestArrayResizeInvariance(t *testing.T) {
	r := newTestResolver()

	for _, id := range []string{"AAL1", "AAL2", "AAL3", "AAL4"} {
		r.Register(id)
	}
	r.Unregister("AAL2")
	r.Register("AAL5")
	r.Unregister("AAL1")

	if r.NTraf() != len(r.initIntruderTAS) || r.NTraf() != len(r.initIntruderHdg) ||
		r.NTraf() != len(r.active) || r.NTraf() != len(r.dv) ||
		r.NTraf() != len(r.timesolveV) || r.NTraf() != len(r.swvsact) {
		t.Fatalf("per-aircraft arrays out of sync with NTraf=%d", r.NTraf())
	}
	for _, id := range r.acid {
		i, ok := r.index[id]
		if !ok || r.acid[i] != id {
			t.Errorf("index inconsistent for %s", id)
		}
	}

	// Re-registering a once-deleted id must come back zero-initialized.
	r.Register("AAL1")
	i := r.index["AAL1"]
	if r.active[i] || r.initIntruderTAS[i] != 0 || r.timesolveV[i] != infinity {
		t.Errorf("re-registered aircraft was not zero-initialized")
	}
}

func TestRegisterIdempotent(t *testing.T) {
	r := newTestResolver()
	r.Register("AAL1")
	r.dv[0] = Vec3{East: 5}
	r.Register("AAL1")
	if r.NTraf() != 1 {
		t.Fatalf("expected a single registration, got NTraf=%d", r.NTraf())
	}
	if r.dv[0].East != 5 {
		t.Errorf("re-registering an existing aircraft clobbered its state")
	}
}

func baseAC(acid string, lat, lon, alt, track, tas float64) traffic.State {
	trackRad := track * math.Pi / 180
	return traffic.State{
		ACID: acid, Lat: lat, Lon: lon, Alt: alt, Track: track, TAS: tas,
		GSEast: tas * math.Sin(trackRad), GSNorth: tas * math.Cos(trackRad),
		SelAlt: alt, APTrack: track, APTAS: tas,
	}
}

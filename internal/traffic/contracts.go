// internal/traffic/contracts.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package traffic defines the collaborator interfaces the conflict
// resolver depends on but does not own: the live aircraft snapshot, the
// conflict detector's per-tick output, the wind model, the performance
// envelope limiter, and the route/waypoint service. Each tick the
// simulator hands the resolver a frozen view of these; the resolver
// never retains a reference past the call that received it.
package traffic

// State is one aircraft's externally-owned state vector, read (never
// written) by the resolver each tick. Position and rates use double
// precision throughout, matching the geometry kernel's float semantics.
type State struct {
	ACID string

	Lat, Lon float64 // degrees
	Alt      float64 // metres

	TAS           float64 // true airspeed, m/s
	GSNorth, GSEast float64 // ground speed components, m/s
	VS            float64 // vertical speed, m/s, + climbing
	Track         float64 // degrees true

	SelAlt  float64 // autopilot-selected altitude, metres
	SelHdg  float64 // autopilot-selected heading/track, degrees; 0 if none commanded

	// APTAS and APTrack are the autopilot's *desired* TAS and track absent
	// any resolver intervention -- the values the recovery state machine's
	// criterion 1 test flies against.
	APTAS   float64
	APTrack float64
}

// ConflictPairs is the conflict detector's per-tick output: parallel
// arrays, one entry per predicted conflict between an ordered pair of
// aircraft (Own[k], Intr[k]). Rpz and Hpz are per-*aircraft* protected-zone
// settings, keyed by identifier rather than aligned with the pair arrays,
// since each aircraft carries its own radii into every pair it appears
// in. DtLookahead is the detector's common look-ahead horizon, in
// seconds.
type ConflictPairs struct {
	Own, Intr []string

	Qdr  []float64 // degrees, bearing from Own to Intr
	Dist []float64 // metres, slant range
	Tcpa []float64 // seconds, time to CPA (may be negative)
	TLOS []float64 // seconds, time to loss of separation

	Rpz map[string]float64 // metres, horizontal protected-zone radius, per aircraft
	Hpz map[string]float64 // metres, vertical protected-zone half-thickness, per aircraft

	DtLookahead float64 // seconds
}

func (c *ConflictPairs) Len() int { return len(c.Own) }

// WindModel reports wind at a position; the resolver queries it once per
// aircraft per tick to convert between ground speed and true airspeed.
type WindModel interface {
	GetWindVector(lat, lon, alt float64) (wn, we float64)
}

// PerformanceLimiter clamps a candidate TAS and vertical speed to an
// aircraft's performance envelope at the given altitude and current
// along-track acceleration ax. It may also clamp the climb/descent rate
// near the aircraft's ceiling or floor, in which case it is permitted to
// change the sign of vs; the resolver detects that and restores the
// originally intended sign.
type PerformanceLimiter interface {
	Limits(acid string, tas, vs, alt, ax float64) (tasOut, vsOut, altOut float64)
}

// RouteService lets the recovery state machine hand an aircraft back to
// its flight plan once the resolver releases it. ActiveWaypoint looks up
// the name of the aircraft's next active waypoint (ok is false if it has
// none, e.g. already direct-to its destination); Direct commands the
// autopilot to proceed directly to the named waypoint.
type RouteService interface {
	ActiveWaypoint(acid string) (wp string, ok bool)
	Direct(acid string, wp string)
}

// internal/resolve/resolver.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import (
	"github.com/mmp/vice-cr/internal/log"
	"github.com/mmp/vice-cr/internal/traffic"
	"github.com/mmp/vice-cr/internal/util"
)

// EngagementObserver is notified of resopairs membership changes; it
// lets ambient telemetry (an engagement/LOS log, a metrics gauge)
// observe the recovery state machine without the core depending on any
// logging or I/O package. A nil Observer is a no-op.
type EngagementObserver interface {
	Opened(own, intr string)
	Closed(own, intr string)
}

// Resolver owns all conflict-resolution engagement state: the per-aircraft
// accumulator columns, the recovery observation set, and the
// configuration switches. It has exclusive write access to that state for
// the duration of a single Tick call; nothing it holds is safe to share
// across concurrent ticks.
type Resolver struct {
	Switches
	ResoFacH float64
	ResoFacV float64

	Wind  traffic.WindModel
	Perf  traffic.PerformanceLimiter
	Route traffic.RouteService

	// Observer, if set, is notified when resopairs gains or loses an
	// entry. Ambient callers (e.g. the engagement logger) set this;
	// tests and the core itself never need to.
	Observer EngagementObserver

	lg *log.Logger

	// acid and index together are the registration facility of §4.G: acid
	// is the live aircraft id list, and every other slice below is
	// resized in lockstep with it by Register/Unregister.
	acid  []string
	index map[string]int

	active          []bool
	initIntruderTAS []float64
	initIntruderHdg []float64

	noresoac  map[string]bool
	resooffac map[string]bool

	resopairs map[Pair]bool

	dv         []Vec3
	timesolveV []float64
	swvsact    []bool
}

// New creates a Resolver with default switches (horizontal resolution of
// both speed and heading, priority off) and no registered aircraft.
func New(wind traffic.WindModel, perf traffic.PerformanceLimiter, route traffic.RouteService, lg *log.Logger) *Resolver {
	return &Resolver{
		Switches:  DefaultSwitches(),
		ResoFacH:  1.0,
		ResoFacV:  1.0,
		Wind:      wind,
		Perf:      perf,
		Route:     route,
		lg:        lg,
		index:     make(map[string]int),
		noresoac:  make(map[string]bool),
		resooffac: make(map[string]bool),
		resopairs: make(map[Pair]bool),
	}
}

// Register adds a new aircraft to the resolver's engagement arrays,
// zero-initialized, if it is not already present. It is a no-op if acid
// is already registered (matching the idempotent registration the
// simulator's create/delete lifecycle expects).
func (r *Resolver) Register(acid string) {
	if _, ok := r.index[acid]; ok {
		return
	}
	r.index[acid] = len(r.acid)
	r.acid = append(r.acid, acid)
	r.active = append(r.active, false)
	r.initIntruderTAS = append(r.initIntruderTAS, 0)
	r.initIntruderHdg = append(r.initIntruderHdg, 0)
	r.dv = append(r.dv, Vec3{})
	r.timesolveV = append(r.timesolveV, infinity)
	r.swvsact = append(r.swvsact, false)
}

// Unregister removes an aircraft and all of its engagement state,
// including any resopairs entries that reference it, and compacts the
// index so that every column stays aligned with acid.
func (r *Resolver) Unregister(acid string) {
	i, ok := r.index[acid]
	if !ok {
		return
	}

	last := len(r.acid) - 1
	r.acid[i] = r.acid[last]
	r.active[i] = r.active[last]
	r.initIntruderTAS[i] = r.initIntruderTAS[last]
	r.initIntruderHdg[i] = r.initIntruderHdg[last]
	r.dv[i] = r.dv[last]
	r.timesolveV[i] = r.timesolveV[last]
	r.swvsact[i] = r.swvsact[last]
	r.index[r.acid[i]] = i

	r.acid = r.acid[:last]
	r.active = r.active[:last]
	r.initIntruderTAS = r.initIntruderTAS[:last]
	r.initIntruderHdg = r.initIntruderHdg[:last]
	r.dv = r.dv[:last]
	r.timesolveV = r.timesolveV[:last]
	r.swvsact = r.swvsact[:last]
	delete(r.index, acid)
	delete(r.noresoac, acid)
	delete(r.resooffac, acid)

	for p := range r.resopairs {
		if p.Own == acid || p.Intr == acid {
			delete(r.resopairs, p)
		}
	}
}

// NTraf returns the number of currently registered aircraft.
func (r *Resolver) NTraf() int { return len(r.acid) }

// Active reports whether the resolver is currently steering acid.
func (r *Resolver) Active(acid string) bool {
	i, ok := r.index[acid]
	return ok && r.active[i]
}

// Acids returns a snapshot of the currently registered aircraft
// identifiers. The result is a copy: a later Register/Unregister does
// not change it, so it goes stale rather than tracking the live set.
func (r *Resolver) Acids() []string {
	return util.DuplicateSlice(r.acid)
}

// OpenPairs returns a snapshot of the currently observed resopairs.
func (r *Resolver) OpenPairs() []Pair {
	out := make([]Pair, 0, len(r.resopairs))
	for p := range r.resopairs {
		out = append(out, p)
	}
	return out
}

// NoReso reports whether acid is flagged noreso.
func (r *Resolver) NoReso(acid string) bool { return r.noresoac[acid] }

// ResoOff reports whether acid is flagged resooff.
func (r *Resolver) ResoOff(acid string) bool { return r.resooffac[acid] }

// InitIntruder returns the snapshotted baseline TAS and track recorded
// for acid the first time it entered its current engagement episode; ok
// is false if acid is not registered.
func (r *Resolver) InitIntruder(acid string) (tas, hdg float64, ok bool) {
	i, found := r.index[acid]
	if !found {
		return 0, 0, false
	}
	return r.initIntruderTAS[i], r.initIntruderHdg[i], true
}

// tickSnapshot bundles the frozen, tick-scoped inputs that the
// aggregator, command synthesizer, and recovery state machine all read
// from; it exists so that index lookups are done once per tick rather
// than once per pair.
type tickSnapshot struct {
	ac        []traffic.State // aligned with r.acid
	conflicts *traffic.ConflictPairs
	asasDt    float64
}

func (s tickSnapshot) rpz(i int) float64 {
	if v, ok := s.conflicts.Rpz[s.ac[i].ACID]; ok {
		return v
	}
	return 0
}

func (s tickSnapshot) hpz(i int) float64 {
	if v, ok := s.conflicts.Hpz[s.ac[i].ACID]; ok {
		return v
	}
	return 0
}

func (s tickSnapshot) velocity(i int) Vec3 {
	return Vec3{East: s.ac[i].GSEast, North: s.ac[i].GSNorth, Vert: s.ac[i].VS}
}

func (s tickSnapshot) acid(i int) string { return s.ac[i].ACID }

// Tick runs one full resolution cycle: pair aggregation, command
// synthesis, and recovery. traf must be ordered consistently with the
// resolver's registered aircraft (every acid in traf must already have
// been Register'd); callers normally Register/Unregister before calling
// Tick so the two stay in sync.
func (r *Resolver) Tick(traf []traffic.State, conf *traffic.ConflictPairs, asasDt float64) []Command {
	snap := tickSnapshot{ac: traf, conflicts: conf, asasDt: asasDt}

	r.aggregate(snap)
	cmds := r.synthesize(snap)
	r.recover(snap)

	return cmds
}

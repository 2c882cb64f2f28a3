// internal/resolve/recovery.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import "math"

// bouncingAngleThreshold and its companion hdist test identify
// nearly-parallel tracks passing just inside the protected zone, which
// would otherwise flicker the detector's in/out-of-conflict verdict tick
// to tick.
const bouncingAngleThreshold = 30.0

// recover runs the recovery state machine (§4.E): it grows resopairs
// with every new conflict, tests each observed pair against the
// free-to-revert criteria, and updates per-aircraft engagement flags,
// redirecting aircraft that regain autopilot control back to their
// route.
func (r *Resolver) recover(snap tickSnapshot) {
	cp := snap.conflicts
	for k := 0; k < cp.Len(); k++ {
		p := Pair{Own: cp.Own[k], Intr: cp.Intr[k]}
		if r.resopairs[p] {
			continue
		}
		r.resopairs[p] = true
		r.snapshotInitIntruder(snap, p.Own)
		r.snapshotInitIntruder(snap, p.Intr)
		if r.Observer != nil {
			r.Observer.Opened(p.Own, p.Intr)
		}
	}

	resetCandidates := make(map[string]bool)
	referenced := make(map[string]bool)

	for p := range r.resopairs {
		i, ok1 := r.index[p.Own]
		if !ok1 {
			delete(r.resopairs, p)
			if r.Observer != nil {
				r.Observer.Closed(p.Own, p.Intr)
			}
			continue
		}

		j, ok2 := r.index[p.Intr]
		if !ok2 {
			delete(r.resopairs, p)
			if r.Observer != nil {
				r.Observer.Closed(p.Own, p.Intr)
			}
			continue
		}

		own, intr := snap.ac[i], snap.ac[j]

		rpz := math.Max(snap.rpz(i), snap.rpz(j)) * r.ResoFacH
		east, north := flatEarthOffset(own.Lat, own.Lon, intr.Lat, intr.Lon)
		hdist := math.Hypot(east, north)

		ownAPVel := headingSpeedToVec(own.APTrack, own.APTAS)

		crit1 := recoveryCriterionPasses(east, north, ownAPVel,
			Vec3{East: intr.GSEast, North: intr.GSNorth}, rpz)
		crit2 := recoveryCriterionPasses(east, north, ownAPVel,
			headingSpeedToVec(r.initIntruderHdg[j], r.initIntruderTAS[j]), rpz)
		free := crit1 && crit2

		horLOS := hdist < rpz/nonZero(r.ResoFacH)
		bouncing := math.Abs(signedAngleDiff(own.Track, intr.Track)) < bouncingAngleThreshold && hdist < rpz

		if !free || horLOS || bouncing {
			referenced[p.Own] = true
			referenced[p.Intr] = true
			continue // keep resolving
		}

		delete(r.resopairs, p)
		resetCandidates[p.Intr] = true
		if r.Observer != nil {
			r.Observer.Closed(p.Own, p.Intr)
		}
	}

	for i, acid := range r.acid {
		wasActive := r.active[i]
		r.active[i] = referenced[acid]
		if wasActive && !r.active[i] {
			if wp, ok := r.Route.ActiveWaypoint(acid); ok {
				r.Route.Direct(acid, wp)
			}
		}
	}

	for acid := range resetCandidates {
		stillReferenced := false
		for p := range r.resopairs {
			if p.Own == acid || p.Intr == acid {
				stillReferenced = true
				break
			}
		}
		if !stillReferenced {
			if i, ok := r.index[acid]; ok {
				r.initIntruderTAS[i] = 0
				r.initIntruderHdg[i] = 0
			}
		}
	}
}

// snapshotInitIntruder records acid's current TAS and track the first
// time it enters a new conflict in its current engagement episode; this
// becomes the stable baseline velocity Criterion 2 tests against, even
// once the resolver starts maneuvering the aircraft.
func (r *Resolver) snapshotInitIntruder(snap tickSnapshot, acid string) {
	i, ok := r.index[acid]
	if !ok || r.initIntruderTAS[i] != 0 {
		return
	}
	r.initIntruderTAS[i] = snap.ac[i].TAS
	r.initIntruderHdg[i] = snap.ac[i].Track
}

// recoveryCriterionPasses implements the shared CPA-prediction math of
// §4.E steps 3-4: given the current relative position (east,north) and
// the two candidate velocity vectors, it predicts the closest approach
// and reports whether the resulting miss distance clears rpz.
func recoveryCriterionPasses(east, north float64, ownVel, intrVel Vec3, rpz float64) bool {
	vrelE, vrelN := intrVel.East-ownVel.East, intrVel.North-ownVel.North
	vrelSq := vrelE*vrelE + vrelN*vrelN
	var tcpa float64
	if vrelSq > 0 {
		tcpa = math.Max(0, -(east*vrelE+north*vrelN)/vrelSq)
	}
	dcpaE := east + vrelE*tcpa
	dcpaN := north + vrelN*tcpa
	return math.Hypot(dcpaE, dcpaN) > rpz
}

func headingSpeedToVec(hdg, tas float64) Vec3 {
	r := hdg * math.Pi / 180
	return Vec3{East: tas * math.Sin(r), North: tas * math.Cos(r)}
}

func signedAngleDiff(a, b float64) float64 {
	d := math.Mod(a-b+180, 360) - 180
	if d <= -180 {
		d += 360
	}
	return d
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

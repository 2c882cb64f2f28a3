// internal/resolve/aggregate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import "math"

const infinity = math.MaxFloat64

// aggregate runs the pair aggregator (§4.C): for every conflict pair it
// runs the geometry kernel and the priority policy (or the halved
// ownship-only subtraction when priority is off), reducing into the
// resolver's per-aircraft dv, timesolveV, and swvsact columns.
//
// Pairs sharing an ownship index reduce commutatively (sum for dv, min
// for timesolveV, logical-OR for swvsact), so this loop may be run
// concurrently across disjoint ownship indices; it is written as a
// single sequential pass here since a tick's conflict count is small
// enough that the reduction itself, not the iteration, dominates.
func (r *Resolver) aggregate(snap tickSnapshot) {
	n := len(r.acid)
	for i := range n {
		r.dv[i] = Vec3{}
		r.timesolveV[i] = infinity
		r.swvsact[i] = false
	}

	cp := snap.conflicts
	for k := 0; k < cp.Len(); k++ {
		i, ok1 := r.index[cp.Own[k]]
		j, ok2 := r.index[cp.Intr[k]]
		if !ok1 || !ok2 {
			continue
		}

		rpzM := math.Max(snap.rpz(i), snap.rpz(j)) * r.ResoFacH
		hpzM := math.Max(snap.hpz(i), snap.hpz(j)) * r.ResoFacV

		mvp := ResolvePair(PairGeometry{
			Qdr:         cp.Qdr[k],
			Dist:        cp.Dist[k],
			Tcpa:        cp.Tcpa[k],
			TLOS:        cp.TLOS[k],
			V1:          snap.velocity(i),
			V2:          snap.velocity(j),
			Alt1:        snap.ac[i].Alt,
			Alt2:        snap.ac[j].Alt,
			RpzM:        rpzM,
			HpzM:        hpzM,
			DtLookahead: cp.DtLookahead,
		})

		if mvp.TsolV < r.timesolveV[i] {
			r.timesolveV[i] = mvp.TsolV
		}

		// Vertical-required flag: predict one ASAS step ahead; if
		// currently horizontally inside the PZ and predicted vertically
		// inside an enlarged PZ, force the aircraft to hold its current
		// altitude in the command synthesizer.
		hdist := flatEarthDistance(snap.ac[i].Lat, snap.ac[i].Lon, snap.ac[j].Lat, snap.ac[j].Lon)
		if hdist < rpzM {
			hpzvsact := hpzM / r.ResoFacV * math.Max(r.ResoFacV, 1.2)
			alt1 := snap.ac[i].Alt + snap.ac[i].VS*snap.asasDt
			alt2 := snap.ac[j].Alt + snap.ac[j].VS*snap.asasDt
			if math.Abs(alt1-alt2) < hpzvsact {
				r.swvsact[i] = true
			}
		}

		dv1 := r.dv[i]
		shared := mvp.Dv
		if r.Switches.Prio {
			// The conflict list carries both (i,j) and its mirror (j,i), so
			// j's own share is credited when that mirrored pair is visited
			// from j's side; only dv1 (this pair's ownship) is kept here.
			dv1, _, shared = applyPriority(r.Switches.PrioCode, mvp.Dv, dv1, r.dv[j], snap.ac[i].VS, snap.ac[j].VS)
		} else {
			shared.Vert *= 0.5
			dv1 = sub3(dv1, shared)
		}

		if r.noresoac[snap.acid(j)] {
			// Intruder will not maneuver. The reference implementation
			// mutates dv_mvp's vertical component in place (halved or
			// zeroed, per whichever branch ran above) before this
			// credit, so the addition here has to reuse that same
			// vector -- not the kernel's raw, unmodified output -- or
			// this pair's contribution to dv1 won't cancel the way the
			// reference's aliasing does. See DESIGN.md for the
			// reference-behavior citation.
			dv1 = add3(dv1, shared)
		}

		r.dv[i] = dv1

		if r.resooffac[snap.acid(i)] {
			r.dv[i] = Vec3{}
		}
	}
}

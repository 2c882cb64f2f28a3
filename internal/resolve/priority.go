// internal/resolve/priority.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

// applyPriority distributes a pair's raw dvMvp between the accumulated
// ownship and intruder deltas dv1, dv2 according to code, given each
// aircraft's current vertical speed (used to classify cruising vs.
// climbing/descending). It returns the updated dv1, dv2, and dvMvp
// itself as left by whichever branch ran -- horizontal components
// unchanged, vertical zeroed or halved per code. The caller must reuse
// that third return value, not the original dvMvp, when crediting a
// noreso intruder's share back to the ownship: the reference
// implementation mutates dv_mvp's vertical component in place before
// that credit is taken, so the subtraction above and the later addition
// have to read the same vector.
func applyPriority(code PriorityCode, dvMvp Vec3, dv1, dv2 Vec3, vs1, vs2 float64) (Vec3, Vec3, Vec3) {
	cruising1 := absf(vs1) < cruiseThreshold
	cruising2 := absf(vs2) < cruiseThreshold

	switch code {
	case FF1:
		dvMvp.Vert *= 0.5
		dv1 = sub3(dv1, dvMvp)
		dv2 = add3(dv2, dvMvp)

	case FF2:
		dvMvp.Vert *= 0.5
		switch {
		case cruising1 && !cruising2:
			// Aircraft 1 cruising, aircraft 2 climbing/descending: only
			// the CD one maneuvers.
			dv2 = add3(dv2, dvMvp)
		case cruising2 && !cruising1:
			dv1 = sub3(dv1, dvMvp)
		default:
			dv1 = sub3(dv1, dvMvp)
			dv2 = add3(dv2, dvMvp)
		}

	case FF3:
		switch {
		case cruising1 && !cruising2:
			dvMvp.Vert = 0
			dv1 = sub3(dv1, dvMvp)
		case cruising2 && !cruising1:
			dvMvp.Vert = 0
			dv2 = add3(dv2, dvMvp)
		default:
			dvMvp.Vert *= 0.5
			dv1 = sub3(dv1, dvMvp)
			dv2 = add3(dv2, dvMvp)
		}

	case LAY1:
		// Cruiser has priority (does not maneuver); CD solves. Always
		// horizontal-only.
		dvMvp.Vert = 0
		switch {
		case cruising1 && !cruising2:
			dv2 = add3(dv2, dvMvp)
		case cruising2 && !cruising1:
			dv1 = sub3(dv1, dvMvp)
		default:
			dv1 = sub3(dv1, dvMvp)
			dv2 = add3(dv2, dvMvp)
		}

	case LAY2:
		// CD has priority; cruiser solves. Always horizontal-only.
		dvMvp.Vert = 0
		switch {
		case cruising1 && !cruising2:
			dv1 = sub3(dv1, dvMvp)
		case cruising2 && !cruising1:
			dv2 = add3(dv2, dvMvp)
		default:
			dv1 = sub3(dv1, dvMvp)
			dv2 = add3(dv2, dvMvp)
		}
	}

	return dv1, dv2, dvMvp
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

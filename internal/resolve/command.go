// internal/resolve/command.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import "math"

// synthesize runs the command synthesizer (§4.D): it turns the
// accumulated per-aircraft velocity deltas into track, airspeed,
// vertical-speed, and target-altitude commands, honoring the active
// resolution-domain switches and clamping through the performance
// envelope.
func (r *Resolver) synthesize(snap tickSnapshot) []Command {
	horizOnly := r.Switches.ResoHoriz && !r.Switches.ResoVert
	verticalActive := r.Switches.ResoVert || !r.Switches.ResoHoriz
	// Under horizontal resolution, SPD-only and HDG-only each hold back
	// the other axis; every other combination -- both sub-switches set,
	// or neither -- resolves both track and speed. With both the
	// horizontal and vertical switches off (combined mode), track, speed
	// and vertical speed are all resolved.
	combined := !r.Switches.ResoHoriz && !r.Switches.ResoVert
	headingMayChange := combined || (r.Switches.ResoHoriz && (!r.Switches.ResoSpd || r.Switches.ResoHdg))
	speedMayChange := combined || (r.Switches.ResoHoriz && (!r.Switches.ResoHdg || r.Switches.ResoSpd))

	cmds := make([]Command, len(r.acid))
	for i, acid := range r.acid {
		ac := snap.ac[i]
		v := Vec3{East: ac.GSEast, North: ac.GSNorth, Vert: ac.VS}
		newv := add3(v, r.dv[i])

		trackOut := ac.Track
		if headingMayChange {
			trackOut = math.Mod(math.Atan2(newv.East, newv.North)*180/math.Pi+360, 360)
		}

		gsOut := math.Hypot(ac.GSEast, ac.GSNorth)
		if speedMayChange {
			gsOut = math.Hypot(newv.East, newv.North)
		}

		vsOut := ac.VS
		if verticalActive {
			vsOut = newv.Vert
		}

		// Convert the chosen ground-speed vector to true airspeed by
		// subtracting wind.
		trackRad := trackOut * math.Pi / 180
		gsEast := gsOut * math.Sin(trackRad)
		gsNorth := gsOut * math.Cos(trackRad)
		wn, we := r.Wind.GetWindVector(ac.Lat, ac.Lon, ac.Alt)
		tas := math.Hypot(gsEast-we, gsNorth-wn)

		tasCapped, vsCapped, _ := r.Perf.Limits(acid, tas, vsOut, ac.Alt, 0)
		if vsOut != 0 && sign(vsCapped) != sign(vsOut) {
			vsCapped = -vsCapped
		}

		altTarget := ac.SelAlt
		dvZ := r.dv[i].Vert
		if r.timesolveV[i] < snap.conflicts.DtLookahead && dvZ != 0 {
			asasAltTemp := vsCapped*r.timesolveV[i] + ac.Alt
			dirToSel := sign(ac.SelAlt - ac.Alt)
			dirResolve := sign(vsCapped)
			agrees := dirResolve != 0 && dirResolve == dirToSel
			correctSide := (dirResolve > 0 && asasAltTemp <= ac.SelAlt) ||
				(dirResolve < 0 && asasAltTemp >= ac.SelAlt)
			if agrees && correctSide {
				altTarget = asasAltTemp
			}
		}

		if horizOnly {
			altTarget = ac.SelAlt
		}
		if r.swvsact[i] {
			altTarget = ac.Alt
		}

		cmds[i] = Command{ACID: acid, Track: trackOut, TAS: tasCapped, VS: vsCapped, AltTarget: altTarget}
	}
	return cmds
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

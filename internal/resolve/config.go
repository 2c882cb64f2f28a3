// internal/resolve/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import (
	"fmt"

	"github.com/mmp/vice-cr/internal/util"
)

// RMETHH implements the RMETHH command (§6.1): it sets the horizontal
// resolution sub-switches and, except for OFF/NONE, forces vertical
// resolution off. Calling with no argument echoes the current setting.
func (r *Resolver) RMETHH(arg string) (bool, string) {
	switch arg {
	case "":
		return true, fmt.Sprintf("RMETHH is %s", r.rmethhString())
	case "ON":
		r.ResoHoriz, r.ResoSpd, r.ResoHdg, r.ResoVert = true, true, true, false
	case "BOTH":
		r.ResoHoriz, r.ResoSpd, r.ResoHdg, r.ResoVert = true, true, true, false
	case "SPD":
		r.ResoHoriz, r.ResoSpd, r.ResoHdg, r.ResoVert = true, true, false, false
	case "HDG":
		r.ResoHoriz, r.ResoSpd, r.ResoHdg, r.ResoVert = true, false, true, false
	case "OFF":
		r.ResoHoriz, r.ResoSpd, r.ResoHdg = false, false, false
	case "NONE":
		r.ResoHoriz, r.ResoSpd, r.ResoHdg = false, false, false
	default:
		return false, "RMETHH: argument must be ON, BOTH, SPD, HDG, OFF, or NONE"
	}
	return true, fmt.Sprintf("RMETHH is now %s", r.rmethhString())
}

func (r *Resolver) rmethhString() string {
	switch {
	case !r.ResoHoriz:
		return "OFF"
	case r.ResoSpd && !r.ResoHdg:
		return "SPD"
	case r.ResoHdg && !r.ResoSpd:
		return "HDG"
	default:
		// Both sub-switches set, or neither: the command synthesizer
		// treats these identically (full horizontal resolution), so
		// both echo as BOTH.
		return "BOTH"
	}
}

// RMETHV implements the RMETHV command (§6.1): it sets vertical
// resolution and, except for OFF/NONE, forces the horizontal group off.
func (r *Resolver) RMETHV(arg string) (bool, string) {
	switch arg {
	case "":
		return true, fmt.Sprintf("RMETHV is %s", r.rmethvString())
	case "ON", "V/S":
		r.ResoVert = true
		r.ResoHoriz, r.ResoSpd, r.ResoHdg = false, false, false
	case "OFF":
		r.ResoVert = false
	case "NONE":
		r.ResoVert = false
	default:
		return false, "RMETHV: argument must be ON, V/S, OFF, or NONE"
	}
	return true, fmt.Sprintf("RMETHV is now %s", r.rmethvString())
}

func (r *Resolver) rmethvString() string {
	if r.ResoVert {
		return "V/S"
	}
	return "OFF"
}

// PRIORULES implements the PRIORULES command (§6.1): it toggles priority
// mode and, when enabling it, selects which of the five priority codes
// governs pair distribution.
func (r *Resolver) PRIORULES(enable string, code string) (bool, string) {
	if enable == "" {
		if r.Switches.Prio {
			return true, fmt.Sprintf("PRIORULES is ON, using %s", r.Switches.PrioCode)
		}
		return true, "PRIORULES is OFF"
	}

	switch enable {
	case "ON":
		pc, ok := ParsePriorityCode(code)
		if !ok {
			return false, "PRIORULES: priority code must be one of FF1, FF2, FF3, LAY1, LAY2"
		}
		r.Switches.Prio = true
		r.Switches.PrioCode = pc
		return true, fmt.Sprintf("PRIORULES is now ON, using %s", pc)
	case "OFF":
		r.Switches.Prio = false
		return true, "PRIORULES is now OFF"
	default:
		return false, "PRIORULES: argument must be ON or OFF"
	}
}

// NORESO implements the NORESO command (§6.1): it flags acid such that
// other aircraft treat it as non-maneuvering and absorb its share of
// every conflict it is party to.
func (r *Resolver) NORESO(acid string) (bool, string) {
	if acid == "" {
		on := util.FilterSlice(util.SortedMapKeys(r.noresoac), func(id string) bool { return r.noresoac[id] })
		return true, fmt.Sprintf("NORESO aircraft: %v", on)
	}
	r.noresoac[acid] = !r.noresoac[acid]
	return true, fmt.Sprintf("NORESO %s is now %t", acid, r.noresoac[acid])
}

// RESOOFF implements the RESOOFF command (§6.1): it flags acid to opt
// out of resolution entirely, clamping its own accumulated delta to zero
// regardless of what conflicts it appears in.
func (r *Resolver) RESOOFF(acid string) (bool, string) {
	if acid == "" {
		off := util.FilterSlice(util.SortedMapKeys(r.resooffac), func(id string) bool { return r.resooffac[id] })
		return true, fmt.Sprintf("RESOOFF aircraft: %v", off)
	}
	r.resooffac[acid] = !r.resooffac[acid]
	return true, fmt.Sprintf("RESOOFF %s is now %t", acid, r.resooffac[acid])
}

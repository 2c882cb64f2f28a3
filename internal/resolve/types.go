// internal/resolve/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package resolve implements the Modified Voltage Potential (MVP)
// conflict-resolution engine: given a tick's traffic snapshot and the
// conflict pairs predicted by an external detector, it computes track,
// airspeed, vertical-speed, and target-altitude commands that resolve
// each conflict, and tracks per-aircraft engagement so that resolved
// aircraft are handed back to the autopilot.
//
// The resolver is deliberately double-precision throughout: the
// geometry it operates on (closing rates over tens of seconds at
// hundreds of metres per second) amplifies float32 rounding into
// metre-scale position error, so unlike the rest of this module's
// ambient float32 math, the core kernel below uses float64.
package resolve

// PriorityCode selects how a pair's resolution vector is distributed
// between ownship and intruder. Represented as a tagged variant rather
// than a bare string so that invalid codes are caught at the command
// surface, not deep inside the aggregator.
type PriorityCode int

const (
	FF1 PriorityCode = iota
	FF2
	FF3
	LAY1
	LAY2
)

func (p PriorityCode) String() string {
	switch p {
	case FF1:
		return "FF1"
	case FF2:
		return "FF2"
	case FF3:
		return "FF3"
	case LAY1:
		return "LAY1"
	case LAY2:
		return "LAY2"
	default:
		return "?"
	}
}

func ParsePriorityCode(s string) (PriorityCode, bool) {
	switch s {
	case "FF1":
		return FF1, true
	case "FF2":
		return FF2, true
	case "FF3":
		return FF3, true
	case "LAY1":
		return LAY1, true
	case "LAY2":
		return LAY2, true
	default:
		return 0, false
	}
}

// cruiseThreshold is the |vs| below which an aircraft is considered
// "cruising" rather than climbing/descending (CD), in m/s.
const cruiseThreshold = 0.1

// headOnMinMiss is the minimum horizontal miss distance, in metres,
// below which the head-on guard synthesizes a perpendicular miss vector
// instead of dividing by a near-zero dabsH.
const headOnMinMiss = 10.0

// Switches is the resolver's process-wide (but instance-owned, never a
// package global) configuration block: which resolution domains are
// active and which priority code governs pair distribution.
type Switches struct {
	ResoHoriz bool
	ResoVert  bool
	ResoSpd   bool
	ResoHdg   bool

	Prio     bool
	PrioCode PriorityCode
}

// DefaultSwitches matches the resolver's power-on configuration:
// horizontal resolution on, with neither sub-switch set. ResoSpd and
// ResoHdg left false (rather than true) is the literal documented
// default; the command synthesizer treats "horizontal on,
// neither sub-switch set" the same as "both set" (see headingMayChange/
// speedMayChange in command.go), so this still resolves both track and
// airspeed, matching "BOTH" behavior without the fields literally
// saying so.
func DefaultSwitches() Switches {
	return Switches{
		ResoHoriz: true,
	}
}

// Pair identifies a conflict under recovery observation by the
// identifiers of the two aircraft involved, not by index or pointer:
// indices are only valid for the duration of a single tick and the
// traffic table may resize between ticks.
type Pair struct {
	Own, Intr string
}

// Command is the per-aircraft output of a tick: the new track, capped
// true airspeed, capped vertical speed, and target altitude.
type Command struct {
	ACID      string
	Track     float64
	TAS       float64
	VS        float64
	AltTarget float64
}

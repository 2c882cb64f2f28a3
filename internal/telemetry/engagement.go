// internal/telemetry/engagement.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package telemetry logs conflict-engagement episodes and periodic
// aircraft state to rotated CSV files, trimmed down from the reference
// performance-logger plugin's LOS and state logs (its fuel/mass and
// traffic-density logs depend on an aircraft-performance model and area
// geofencing that are out of scope here).
package telemetry

import (
	"encoding/csv"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mmp/vice-cr/internal/traffic"
)

const engagementHeader = "episode_id,event,tick,own,intr\n"
const stateHeader = "tick,acid,lat,lon,track,alt,vs,tas\n"

// EngagementLog records one line per conflict-engagement episode open
// and close, correlated by a uuid so the two lines can be joined
// downstream without depending on line ordering.
type EngagementLog struct {
	mu   sync.Mutex
	w    *csv.Writer
	file *lumberjack.Logger
	tick int64
	ids  map[string]uuid.UUID
}

// NewEngagementLog opens (creating if necessary) a rotated CSV log at
// path.
func NewEngagementLog(path string) *EngagementLog {
	f := &lumberjack.Logger{Filename: path, MaxSize: 32, MaxBackups: 5}
	l := &EngagementLog{file: f, w: csv.NewWriter(f), ids: make(map[string]uuid.UUID)}
	f.Write([]byte(engagementHeader))
	return l
}

// Tick advances the logger's tick counter; call once per simulator tick
// before Open/Close so log lines carry the tick they occurred on.
func (l *EngagementLog) Tick(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tick = n
}

// Opened records the start of an engagement episode for the ordered
// pair (own, intr), stamping it with a fresh correlation id that Closed
// will reuse. Satisfies resolve.EngagementObserver.
func (l *EngagementLog) Opened(own, intr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uuid.New()
	l.ids[own+"\x00"+intr] = id
	l.w.Write([]string{id.String(), "open", fmt.Sprint(l.tick), own, intr})
	l.w.Flush()
}

// Closed records the end of the engagement episode for (own, intr),
// reusing the id Opened assigned it if still tracked. Satisfies
// resolve.EngagementObserver.
func (l *EngagementLog) Closed(own, intr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := own + "\x00" + intr
	id, ok := l.ids[key]
	if !ok {
		id = uuid.New()
	} else {
		delete(l.ids, key)
	}
	l.w.Write([]string{id.String(), "close", fmt.Sprint(l.tick), own, intr})
	l.w.Flush()
}

// Shutdown closes the underlying rotated file.
func (l *EngagementLog) Shutdown() error { return l.file.Close() }

// StateLog periodically records the full per-aircraft state vector for
// post-hoc replay, mirroring the reference plugin's periodic state
// logger. It samples only every Period calls to Sample, so a caller may
// invoke Sample every tick without flooding the log.
type StateLog struct {
	mu     sync.Mutex
	w      *csv.Writer
	file   *lumberjack.Logger
	Period int
	n      int
}

func NewStateLog(path string, period int) *StateLog {
	if period < 1 {
		period = 1
	}
	f := &lumberjack.Logger{Filename: path, MaxSize: 64, MaxBackups: 3}
	s := &StateLog{file: f, w: csv.NewWriter(f), Period: period}
	f.Write([]byte(stateHeader))
	return s
}

// Sample writes one line per aircraft in snap if this call lands on a
// sampling boundary; tick is the simulator tick count used as the
// sample's timestamp column.
func (s *StateLog) Sample(tick int64, snap []traffic.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	if s.n%s.Period != 0 {
		return
	}
	for _, ac := range snap {
		s.w.Write([]string{
			fmt.Sprint(tick), ac.ACID,
			fmt.Sprintf("%.6f", ac.Lat), fmt.Sprintf("%.6f", ac.Lon),
			fmt.Sprintf("%.2f", ac.Track), fmt.Sprintf("%.1f", ac.Alt),
			fmt.Sprintf("%.2f", ac.VS), fmt.Sprintf("%.2f", ac.TAS),
		})
	}
	s.w.Flush()
}

func (s *StateLog) Close() error { return s.file.Close() }

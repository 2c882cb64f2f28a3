// internal/cache/wind.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package cache wraps the traffic.WindModel and traffic.RouteService
// collaborators with bounded caches, so a tick with many aircraft
// revisiting the same wind cell or the same route lookup doesn't repeat
// external work the resolver itself has no opinion about.
package cache

import (
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/mmp/vice-cr/internal/traffic"
)

type windVec struct{ wn, we float64 }

// Wind decorates a traffic.WindModel with an LRU cache keyed by a
// coarse lat/lon/alt cell. Wind grids change slowly relative to a
// simulation tick, so a cell hit is safe to reuse across the handful of
// ticks an aircraft spends inside it.
type Wind struct {
	inner traffic.WindModel
	cells *lru.Cache[string, windVec]
}

// NewWind wraps inner with an LRU of the given capacity (entries, not
// bytes). A capacity of a few thousand comfortably covers a busy sector.
func NewWind(inner traffic.WindModel, capacity int) *Wind {
	cells, err := lru.New[string, windVec](capacity)
	if err != nil {
		// Only non-positive capacity reaches here; fall back to a small
		// default rather than propagating a constructor error for what
		// is purely a performance knob.
		cells, _ = lru.New[string, windVec](128)
	}
	return &Wind{inner: inner, cells: cells}
}

func (w *Wind) GetWindVector(lat, lon, alt float64) (wn, we float64) {
	key := cellKey(lat, lon, alt)
	if v, ok := w.cells.Get(key); ok {
		return v.wn, v.we
	}
	wn, we = w.inner.GetWindVector(lat, lon, alt)
	w.cells.Add(key, windVec{wn, we})
	return wn, we
}

func cellKey(lat, lon, alt float64) string {
	round := func(v, step float64) float64 { return math.Round(v/step) * step }
	return fmt.Sprintf("%.2f,%.2f,%.0f", round(lat, 0.01), round(lon, 0.01), round(alt, 100))
}

// Route decorates a traffic.RouteService with a short-TTL cache of
// ActiveWaypoint lookups, invalidated eagerly on Direct since a Direct
// call is the authoritative signal that an aircraft's active waypoint
// just changed.
type Route struct {
	inner traffic.RouteService
	ttl   *gocache.Cache
}

type activeWaypoint struct {
	wp string
	ok bool
}

// NewRoute wraps inner with a cache entry lifetime of ttl.
func NewRoute(inner traffic.RouteService, ttl time.Duration) *Route {
	return &Route{inner: inner, ttl: gocache.New(ttl, 2*ttl)}
}

func (r *Route) ActiveWaypoint(acid string) (string, bool) {
	if v, found := r.ttl.Get(acid); found {
		aw := v.(activeWaypoint)
		return aw.wp, aw.ok
	}
	wp, ok := r.inner.ActiveWaypoint(acid)
	r.ttl.SetDefault(acid, activeWaypoint{wp, ok})
	return wp, ok
}

func (r *Route) Direct(acid string, wp string) {
	r.inner.Direct(acid, wp)
	r.ttl.Delete(acid)
}

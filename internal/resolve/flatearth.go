// internal/resolve/flatearth.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package resolve

import "math"

const earthRadiusM = 6371000.0

// flatEarthOffset returns the local-tangent-plane (east, north) offset in
// metres from (lat1,lon1) to (lat2,lon2), valid over the short ranges
// relevant to conflict geometry and recovery.
func flatEarthOffset(lat1, lon1, lat2, lon2 float64) (east, north float64) {
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180
	meanLat := 0.5 * (lat1 + lat2) * math.Pi / 180
	east = earthRadiusM * dlon * math.Cos(meanLat)
	north = earthRadiusM * dlat
	return east, north
}

func flatEarthDistance(lat1, lon1, lat2, lon2 float64) float64 {
	e, n := flatEarthOffset(lat1, lon1, lat2, lon2)
	return math.Hypot(e, n)
}

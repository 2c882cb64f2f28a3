// internal/util/generic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// SortedMapKeys returns the keys of the given map, sorted from low to
// high, for deterministic echoing of the resolver's noreso/resooff
// aircraft sets.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// DuplicateSlice returns a newly allocated copy of s, for callers that
// must not be able to observe later mutation of the resolver's backing
// array.
func DuplicateSlice[V any](s []V) []V {
	return append([]V(nil), s...)
}

// FilterSlice returns a newly allocated slice with the elements of s for
// which pred returns true.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var out []V
	for _, v := range s {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

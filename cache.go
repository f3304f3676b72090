// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lrucache provides caching interfaces shared by the recency-ordered
// caches in its subpackages.
package lrucache

// Cacher is a bounded key value store that drops entries on its own when
// full. Implementations in this module drop the least recently used entry.
type Cacher[K comparable, V any] interface {
	// Put stores value under key and marks it most recently used, evicting
	// older entries if the cache is full.
	Put(key K, value V)

	// Get returns the value under key and marks it most recently used. A miss
	// returns the zero value and false; it is not an error.
	Get(key K) (V, bool)

	// Evict removes key if present.
	Evict(key K)

	// Flush removes every entry.
	Flush()

	// Len returns the number of entries held.
	Len() int

	// PortionFilled returns how full the cache is, from 0 to 1.
	PortionFilled() float64
}

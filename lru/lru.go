// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lru provides fixed-capacity least-recently-used caches with O(1)
// Get and Put.
package lru

import (
	"fmt"
	"math"

	"github.com/luxfi/lrucache"
)

var _ lrucache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// MaxCapacity is the largest capacity New accepts. Entries are addressed by
// 32-bit handles and handle 0 is reserved.
const MaxCapacity = math.MaxUint32 - 1

// sizeHint bounds how much New allocates up front. Larger caches grow on
// demand.
const sizeHint = 1 << 10

// WithOnEvict registers a callback invoked with every entry pushed out
// because the cache was full. It runs after the new entry is stored.
// Explicit Evict and Flush calls do not trigger it.
//
// The callback must not call back into a SyncCache it belongs to; the lock
// is held while it runs.
func WithOnEvict[K comparable, V any](onEvict func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = onEvict
	}
}

// Cache is an LRU cache holding at most a fixed number of entries.
//
// Cache is not safe for concurrent use. Wrap it in a SyncCache, or guard
// every call with a single lock, when sharing it between goroutines.
type Cache[K comparable, V any] struct {
	capacity int
	elements map[K]handle
	order    recencyList[K, V]
	onEvict  func(K, V)
}

// New creates an empty LRU cache that holds up to capacity entries.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity < 1 || uint64(capacity) > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity must be in [1, %d], got %d", lrucache.ErrInvalidConfiguration, uint64(MaxCapacity), capacity)
	}
	hint := min(capacity, sizeHint)
	c := &Cache[K, V]{
		capacity: capacity,
		elements: make(map[K]handle, hint),
		order:    newRecencyList[K, V](hint),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Put inserts or updates an element and marks it most recently used. When a
// new key arrives at a full cache the least recently used entry is evicted
// first.
func (c *Cache[K, V]) Put(key K, value V) {
	if h, ok := c.elements[key]; ok {
		c.order.get(h).value = value
		c.order.moveToBack(h)
		return
	}

	var (
		evictedKey   K
		evictedValue V
		evicted      bool
	)
	if c.order.len >= c.capacity {
		evictedKey, evictedValue, evicted = c.removeOldest()
	}
	c.elements[key] = c.order.pushBack(key, value, 1)

	if evicted && c.onEvict != nil {
		c.onEvict(evictedKey, evictedValue)
	}
}

// Get returns the value stored for key and marks it most recently used.
// A miss returns the zero value and false.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	h, ok := c.elements[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToBack(h)
	return c.order.get(h).value, true
}

// Peek returns the value stored for key without updating its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	h, ok := c.elements[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.order.get(h).value, true
}

// Contains reports whether key is cached, without updating its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.elements[key]
	return ok
}

// Oldest returns the entry that would be evicted next.
func (c *Cache[K, V]) Oldest() (key K, value V, ok bool) {
	h := c.order.front()
	if h == root {
		return key, value, false
	}
	s := c.order.get(h)
	return s.key, s.value, true
}

// Keys returns the cached keys ordered from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	return c.order.keys()
}

// Evict removes the specified entry from the cache.
func (c *Cache[K, V]) Evict(key K) {
	if h, ok := c.elements[key]; ok {
		delete(c.elements, key)
		c.order.remove(h)
	}
}

// Flush removes all entries from the cache.
func (c *Cache[K, V]) Flush() {
	clear(c.elements)
	c.order.init()
}

// Len returns the number of elements in the cache.
func (c *Cache[K, V]) Len() int {
	return c.order.len
}

// Cap returns the maximum number of elements the cache holds.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[K, V]) PortionFilled() float64 {
	return float64(c.order.len) / float64(c.capacity)
}

func (c *Cache[K, V]) removeOldest() (key K, value V, ok bool) {
	h := c.order.front()
	if h == root {
		return key, value, false
	}
	key, value = c.order.remove(h)
	delete(c.elements, key)
	return key, value, true
}

// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"sync"

	"github.com/luxfi/lrucache"
)

// SyncCache is a Cache guarded by a single mutex. Every call, including Get,
// takes the exclusive lock because a hit reorders the recency list.
type SyncCache[K comparable, V any] struct {
	mu    sync.Mutex
	cache *Cache[K, V]
}

// NewSyncCache creates a thread-safe LRU cache holding up to capacity entries.
// An OnEvict callback runs with the lock held and must not use the cache.
func NewSyncCache[K comparable, V any](capacity int, opts ...Option[K, V]) (*SyncCache[K, V], error) {
	c, err := New[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncCache[K, V]{cache: c}, nil
}

// Get retrieves value from cache
func (c *SyncCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(key)
}

// GetOrPut returns the cached value for key, or stores and returns the
// result of create if the key is missing. create runs under the lock.
func (c *SyncCache[K, V]) GetOrPut(key K, create func() V) (value V, existed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(key); ok {
		return v, true
	}
	v := create()
	c.cache.Put(key, v)
	return v, false
}

// Put adds value to cache
func (c *SyncCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Put(key, value)
}

// Peek reads a value without touching its recency.
func (c *SyncCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Peek(key)
}

// Contains checks key existence
func (c *SyncCache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Contains(key)
}

// Keys returns the cached keys from least to most recently used.
func (c *SyncCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Keys()
}

// Evict removes a key from cache
func (c *SyncCache[K, V]) Evict(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Evict(key)
}

// Flush removes all entries from cache
func (c *SyncCache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Flush()
}

// Len returns cache size
func (c *SyncCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// PortionFilled returns fraction of cache currently filled (0 --> 1)
func (c *SyncCache[K, V]) PortionFilled() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.PortionFilled()
}

var _ lrucache.Cacher[struct{}, struct{}] = (*SyncCache[struct{}, struct{}])(nil)

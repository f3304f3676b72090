// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"fmt"
	"sync"

	"github.com/luxfi/lrucache"
)

// SizedCache is an LRU cache bounded by total entry weight rather than
// entry count.
type SizedCache[K comparable, V any] struct {
	mu          sync.Mutex
	maxSize     int
	currentSize int
	sizeFn      func(K, V) int
	items       map[K]handle
	lru         recencyList[K, V]
}

// NewSizedCache creates a size-bounded LRU cache. A nil sizeFn weighs every
// entry as 1, and weights below 1 count as 1, so maxSize also bounds the
// number of entries. Storage grows on demand.
func NewSizedCache[K comparable, V any](maxSize int, sizeFn func(K, V) int) (*SizedCache[K, V], error) {
	if maxSize < 1 || uint64(maxSize) > MaxCapacity {
		return nil, fmt.Errorf("%w: max size must be in [1, %d], got %d", lrucache.ErrInvalidConfiguration, uint64(MaxCapacity), maxSize)
	}
	if sizeFn == nil {
		sizeFn = func(K, V) int { return 1 }
	}
	return &SizedCache[K, V]{
		maxSize: maxSize,
		sizeFn:  sizeFn,
		items:   make(map[K]handle),
		lru:     newRecencyList[K, V](0),
	}, nil
}

// Put inserts or replaces a value. An entry heavier than the whole cache is
// not stored, and any older value for its key is dropped.
func (c *SizedCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entrySize := max(c.sizeFn(key, value), 1)
	if h, ok := c.items[key]; ok {
		c.removeLocked(h)
	}
	if entrySize > c.maxSize {
		return
	}

	for c.currentSize > c.maxSize-entrySize {
		oldest := c.lru.front()
		if oldest == root {
			break
		}
		c.removeLocked(oldest)
	}

	c.items[key] = c.lru.pushBack(key, value, entrySize)
	c.currentSize += entrySize
}

// Get retrieves a value and marks it as most recently used.
func (c *SizedCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.items[key]; ok {
		c.lru.moveToBack(h)
		return c.lru.get(h).value, true
	}
	var zero V
	return zero, false
}

// Evict removes a key from the cache.
func (c *SizedCache[K, V]) Evict(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.items[key]; ok {
		c.removeLocked(h)
	}
}

// Flush removes all entries.
func (c *SizedCache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	c.lru.init()
	c.currentSize = 0
}

// Len returns number of entries.
func (c *SizedCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Size returns the summed weight of all entries.
func (c *SizedCache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentSize
}

// PortionFilled returns the ratio of size used to max size.
func (c *SizedCache[K, V]) PortionFilled() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.currentSize) / float64(c.maxSize)
}

func (c *SizedCache[K, V]) removeLocked(h handle) {
	c.currentSize -= c.lru.get(h).weight
	key, _ := c.lru.remove(h)
	delete(c.items, key)
}

var _ lrucache.Cacher[struct{}, struct{}] = (*SizedCache[struct{}, struct{}])(nil)

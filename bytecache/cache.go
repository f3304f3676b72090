// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bytecache provides a sharded LRU cache for byte slices bounded by
// total key and value bytes.
package bytecache

import (
	"fmt"
	"sync/atomic"

	"github.com/spaolacci/murmur3"

	"github.com/luxfi/lrucache"
	"github.com/luxfi/lrucache/lru"
)

const (
	numShards = 256
	shardMask = numShards - 1
)

// Stats contains cache performance metrics.
type Stats struct {
	EntriesCount uint64
	BytesSize    uint64
	GetCalls     uint64
	SetCalls     uint64
	Misses       uint64
}

// Cache is a sharded LRU byte cache. Keys are spread over shards by their
// murmur3 hash and each shard evicts independently, so the byte bound is
// enforced per shard.
type Cache struct {
	shards   [numShards]*lru.SizedCache[string, []byte]
	getCalls atomic.Uint64
	setCalls atomic.Uint64
	misses   atomic.Uint64
}

func entrySize(key string, value []byte) int {
	return len(key) + len(value)
}

// New creates a new byte cache with the given max size in bytes.
func New(maxBytes int) (*Cache, error) {
	if maxBytes < 1 {
		return nil, fmt.Errorf("%w: max bytes must be at least 1, got %d", lrucache.ErrInvalidConfiguration, maxBytes)
	}
	perShard := max(maxBytes/numShards, 1)

	c := &Cache{}
	for i := range c.shards {
		shard, err := lru.NewSizedCache[string, []byte](perShard, entrySize)
		if err != nil {
			return nil, err
		}
		c.shards[i] = shard
	}
	return c, nil
}

func (c *Cache) shard(key []byte) *lru.SizedCache[string, []byte] {
	return c.shards[murmur3.Sum32(key)&shardMask]
}

// Reset clears all cached entries.
func (c *Cache) Reset() {
	for _, s := range c.shards {
		s.Flush()
	}
}

// Del removes a key from the cache.
func (c *Cache) Del(key []byte) {
	c.shard(key).Evict(string(key))
}

// Has reports whether a key exists. A hit counts as a use.
func (c *Cache) Has(key []byte) bool {
	_, ok := c.shard(key).Get(string(key))
	return ok
}

// HasGet appends the value to dst and reports whether it exists.
func (c *Cache) HasGet(dst, key []byte) ([]byte, bool) {
	c.getCalls.Add(1)
	val, ok := c.shard(key).Get(string(key))
	if !ok {
		c.misses.Add(1)
		return dst, false
	}
	return append(dst, val...), true
}

// Get appends the value for key to dst and returns the result. A miss
// returns dst unchanged.
func (c *Cache) Get(dst, key []byte) []byte {
	dst, _ = c.HasGet(dst, key)
	return dst
}

// Set stores a copy of value under key. Entries larger than a shard are
// dropped.
func (c *Cache) Set(key, value []byte) {
	c.setCalls.Add(1)
	c.shard(key).Put(string(key), append([]byte(nil), value...))
}

// UpdateStats populates the provided stats struct.
func (c *Cache) UpdateStats(s *Stats) {
	if s == nil {
		return
	}
	var entries, size uint64
	for _, sh := range c.shards {
		entries += uint64(sh.Len())
		size += uint64(sh.Size())
	}
	s.EntriesCount = entries
	s.BytesSize = size
	s.GetCalls = c.getCalls.Load()
	s.SetCalls = c.setCalls.Load()
	s.Misses = c.misses.Load()
}

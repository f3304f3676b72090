// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package ratelimit

import (
	"github.com/luxfi/lrucache/lru"
)

// Limiter rate limits many keys with one TokenBucket each. Buckets live in
// an LRU cache so memory stays bounded; a key whose bucket was evicted starts
// again with a full bucket.
type Limiter[K comparable] struct {
	buckets  *lru.SyncCache[K, *TokenBucket]
	capacity int
	rate     float64
	opts     []Option
}

// NewLimiter tracks at most maxKeys buckets, each configured like
// NewTokenBucket(capacity, refillPerSecond, opts...).
func NewLimiter[K comparable](maxKeys, capacity int, refillPerSecond float64, opts ...Option) (*Limiter[K], error) {
	if err := validate(capacity, refillPerSecond); err != nil {
		return nil, err
	}
	buckets, err := lru.NewSyncCache[K, *TokenBucket](maxKeys)
	if err != nil {
		return nil, err
	}
	return &Limiter[K]{
		buckets:  buckets,
		capacity: capacity,
		rate:     refillPerSecond,
		opts:     opts,
	}, nil
}

// Allow consumes one token from key's bucket.
func (l *Limiter[K]) Allow(key K) bool {
	bucket, _ := l.buckets.GetOrPut(key, func() *TokenBucket {
		return newTokenBucket(l.capacity, l.rate, l.opts)
	})
	return bucket.Allow()
}

// Tracked returns the number of keys currently holding a bucket.
func (l *Limiter[K]) Tracked() int {
	return l.buckets.Len()
}

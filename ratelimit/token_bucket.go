// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ratelimit provides token bucket rate limiting.
package ratelimit

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/luxfi/lrucache"
)

// Option configures a TokenBucket.
type Option func(*TokenBucket)

// WithClock replaces time.Now as the bucket's time source.
func WithClock(now func() time.Time) Option {
	return func(b *TokenBucket) {
		b.now = now
	}
}

// TokenBucket allows bursts of up to capacity requests and refills at a
// constant rate. Tokens are added lazily on each call rather than by a
// background goroutine. It is safe for concurrent use.
type TokenBucket struct {
	limiter *rate.Limiter
	now     func() time.Time
}

func validate(capacity int, refillPerSecond float64) error {
	if capacity < 1 {
		return fmt.Errorf("%w: bucket capacity must be positive, got %d", lrucache.ErrInvalidConfiguration, capacity)
	}
	if !(refillPerSecond > 0) {
		return fmt.Errorf("%w: refill rate must be positive, got %v", lrucache.ErrInvalidConfiguration, refillPerSecond)
	}
	return nil
}

// NewTokenBucket returns a full bucket holding capacity tokens that refills
// at refillPerSecond tokens per second.
func NewTokenBucket(capacity int, refillPerSecond float64, opts ...Option) (*TokenBucket, error) {
	if err := validate(capacity, refillPerSecond); err != nil {
		return nil, err
	}
	return newTokenBucket(capacity, refillPerSecond, opts), nil
}

func newTokenBucket(capacity int, refillPerSecond float64, opts []Option) *TokenBucket {
	b := &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(refillPerSecond), capacity),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow consumes a single token if one is available.
func (b *TokenBucket) Allow() bool {
	return b.AllowN(1)
}

// AllowN consumes n tokens if at least n are available. A denied request
// consumes nothing, and n below 1 is always denied.
func (b *TokenBucket) AllowN(n int) bool {
	if n < 1 {
		return false
	}
	return b.limiter.AllowN(b.now(), n)
}

// Tokens returns the number of tokens currently available.
func (b *TokenBucket) Tokens() float64 {
	return b.limiter.TokensAt(b.now())
}

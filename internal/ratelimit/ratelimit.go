// Package ratelimit provides the token-bucket limiter shared by the whole
// request pipeline.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a mutex-protected token bucket. Tokens refill at a
// constant rate up to the burst capacity; each request consumes one token.
// A single bucket is shared across all concurrent requests, so the
// decrement happens under the lock to avoid over-admission.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int64
	tokens     int64
	refillRate float64 // tokens per second
	lastRefill time.Time

	now func() time.Time // overridable for tests
}

// NewTokenBucket creates a full bucket with the given burst capacity and
// refill rate in tokens per second.
func NewTokenBucket(capacity int64, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// Allow consumes one token if available and reports whether the request is
// admitted.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked()

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Remaining returns the tokens currently available.
func (tb *TokenBucket) Remaining() int64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked()
	return tb.tokens
}

// Capacity returns the burst capacity.
func (tb *TokenBucket) Capacity() int64 {
	return tb.capacity
}

// refillLocked adds tokens for the time elapsed since the last refill.
// Caller must hold the lock. The refill time only advances when at least
// one whole token accrues, so sub-token elapsed time keeps accruing.
func (tb *TokenBucket) refillLocked() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)

	tokensToAdd := int64(elapsed.Seconds() * tb.refillRate)
	if tokensToAdd <= 0 {
		return
	}

	tb.tokens += tokensToAdd
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

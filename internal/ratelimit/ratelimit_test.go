package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fixedClock lets tests advance bucket time without sleeping.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBucket(capacity int64, rate float64) (*TokenBucket, *fixedClock) {
	clock := &fixedClock{now: time.Now()}
	tb := NewTokenBucket(capacity, rate)
	tb.now = clock.Now
	tb.lastRefill = clock.Now()
	return tb, clock
}

func TestTokenBucket_BurstThenReject(t *testing.T) {
	tb, _ := newTestBucket(5, 2)

	// 6 instantaneous requests: exactly 5 admitted, the 6th rejected
	admitted := 0
	for i := 0; i < 6; i++ {
		if tb.Allow() {
			admitted++
		}
	}
	if admitted != 5 {
		t.Fatalf("admitted %d of 6 instantaneous requests, want 5", admitted)
	}
}

func TestTokenBucket_RefillAfterPause(t *testing.T) {
	tb, clock := newTestBucket(5, 2)

	for i := 0; i < 5; i++ {
		tb.Allow()
	}
	if tb.Allow() {
		t.Fatal("empty bucket admitted a request")
	}

	// After a 1-second pause, 2 more are admitted at 2 tokens/second
	clock.Advance(time.Second)

	admitted := 0
	for i := 0; i < 3; i++ {
		if tb.Allow() {
			admitted++
		}
	}
	if admitted != 2 {
		t.Fatalf("admitted %d requests after 1s pause, want 2", admitted)
	}
}

func TestTokenBucket_RefillCapsAtCapacity(t *testing.T) {
	tb, clock := newTestBucket(5, 2)

	for i := 0; i < 3; i++ {
		tb.Allow()
	}

	clock.Advance(time.Hour)

	if got := tb.Remaining(); got != 5 {
		t.Errorf("Remaining() = %d after long idle, want capacity 5", got)
	}
}

func TestTokenBucket_FractionalRefillNotDiscarded(t *testing.T) {
	tb, clock := newTestBucket(5, 2)

	for i := 0; i < 5; i++ {
		tb.Allow()
	}

	// 300ms at 2/s is 0.6 tokens: not admitted yet, and the partial
	// progress must survive the probe.
	clock.Advance(300 * time.Millisecond)
	if tb.Allow() {
		t.Fatal("admitted on a fractional token")
	}

	clock.Advance(300 * time.Millisecond)
	if !tb.Allow() {
		t.Fatal("600ms of accrued refill was discarded")
	}
}

func TestTokenBucket_NoOverAdmissionUnderContention(t *testing.T) {
	tb, _ := newTestBucket(50, 1)

	var admitted int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tb.Allow() {
				atomic.AddInt64(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	if admitted != 50 {
		t.Errorf("admitted %d concurrent requests, want exactly 50", admitted)
	}
}

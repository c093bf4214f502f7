package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// Token bucket validation errors
var (
	// ErrInvalidCapacity is returned when a bucket capacity is zero or negative.
	ErrInvalidCapacity = errors.New("bucket capacity must be positive")

	// ErrInvalidRefillRate is returned when a bucket refill rate is zero or negative.
	ErrInvalidRefillRate = errors.New("bucket refill rate must be positive")
)

// TokenBucket is a thread-safe token bucket. Tokens refill continuously based
// on the time elapsed since the last refill rather than on a background timer,
// so the bucket is exact regardless of call cadence. All state mutation happens
// under a single mutex per bucket.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

// BucketStatus is a point-in-time report of a bucket's state.
type BucketStatus struct {
	// CurrentTokens is the number of tokens available right now.
	CurrentTokens float64 `json:"current_tokens"`

	// Capacity is the maximum number of tokens the bucket holds.
	Capacity float64 `json:"capacity"`

	// RefillRatePerMinute is the refill rate expressed per minute.
	RefillRatePerMinute float64 `json:"refill_rate_per_minute"`

	// NextTokenIn is the time until the next whole token becomes
	// available, or zero if one is already available.
	NextTokenIn time.Duration `json:"next_token_in"`

	// Full reports whether the bucket is at capacity.
	Full bool `json:"bucket_full"`
}

// NewTokenBucket creates a bucket that starts full.
// Capacity and refillRate (tokens per second) must both be positive.
func NewTokenBucket(capacity, refillRate float64) (*TokenBucket, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if refillRate <= 0 {
		return nil, ErrInvalidRefillRate
	}

	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     capacity,
		lastRefill: time.Now(),
	}, nil
}

// refill adds tokens for the time elapsed since the last refill, capped at
// capacity. Must be called with the mutex held. time.Now carries a monotonic
// reading, so elapsed time is immune to wall-clock adjustment; a negative
// elapsed value is treated as zero.
func (b *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

// Consume attempts to deduct n tokens after refilling. It returns true and
// deducts if sufficient tokens exist, otherwise false with state unchanged.
// Concurrent callers are serialized; the bucket never goes below zero.
func (b *TokenBucket) Consume(n float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()

	if b.tokens >= n {
		b.tokens -= n
		return true
	}
	return false
}

// Status refills the bucket and reports its current state. The refill side
// effect is idempotent-safe: it is monotonic and bounded by elapsed time.
func (b *TokenBucket) Status() BucketStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()

	var nextToken time.Duration
	if needed := 1 - b.tokens; needed > 0 {
		nextToken = time.Duration(needed / b.refillRate * float64(time.Second))
	}

	return BucketStatus{
		CurrentTokens:       b.tokens,
		Capacity:            b.capacity,
		RefillRatePerMinute: b.refillRate * 60,
		NextTokenIn:         nextToken,
		Full:                b.tokens >= b.capacity,
	}
}

// TimeUntilAvailable returns how long until n tokens are available:
// zero if they already are, else (n - current) / refillRate.
func (b *TokenBucket) TimeUntilAvailable(n float64) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()

	if b.tokens >= n {
		return 0
	}
	return time.Duration((n - b.tokens) / b.refillRate * float64(time.Second))
}

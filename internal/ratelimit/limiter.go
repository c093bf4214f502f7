package ratelimit

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidLimit is returned when a per-minute request limit is zero or negative.
var ErrInvalidLimit = errors.New("requests per minute must be positive")

// Limiter admits or rejects requests against a per-minute budget using a token
// bucket. Capacity equals the per-minute limit and tokens refill at limit/60
// per second, so a full minute of idle time restores the whole budget.
//
// A Limiter is created once per session and holds no state beyond the bucket
// and the configured limit; discarding it is the only teardown.
type Limiter struct {
	bucket            *TokenBucket
	requestsPerMinute int
}

// LimitStatus is a point-in-time report of the limiter's state.
type LimitStatus struct {
	// Allowed reports whether a request issued now would be admitted.
	Allowed bool `json:"allowed"`

	// Remaining is the number of whole requests left in the budget.
	Remaining int `json:"remaining_requests"`

	// LimitPerMinute is the configured request budget.
	LimitPerMinute int `json:"limit_per_minute"`

	// ResetIn is the time until the next request becomes available,
	// or zero if one is available now.
	ResetIn time.Duration `json:"reset_in"`

	// Bucket is the underlying bucket detail.
	Bucket BucketStatus `json:"bucket_status"`
}

// NewLimiter creates a limiter admitting up to requestsPerMinute requests.
func NewLimiter(requestsPerMinute int) (*Limiter, error) {
	if requestsPerMinute <= 0 {
		return nil, ErrInvalidLimit
	}

	bucket, err := NewTokenBucket(float64(requestsPerMinute), float64(requestsPerMinute)/60.0)
	if err != nil {
		return nil, err
	}

	return &Limiter{
		bucket:            bucket,
		requestsPerMinute: requestsPerMinute,
	}, nil
}

// Allow consumes one request from the budget, returning false when the
// request must be rejected or deferred.
func (l *Limiter) Allow() bool {
	return l.bucket.Consume(1)
}

// Status reports the limiter's state without consuming from the budget.
func (l *Limiter) Status() LimitStatus {
	bucket := l.bucket.Status()

	return LimitStatus{
		Allowed:        bucket.CurrentTokens >= 1,
		Remaining:      int(math.Floor(bucket.CurrentTokens)),
		LimitPerMinute: l.requestsPerMinute,
		ResetIn:        bucket.NextTokenIn,
		Bucket:         bucket,
	}
}

// TimeUntilReset returns how long until the next request is allowed.
func (l *Limiter) TimeUntilReset() time.Duration {
	return l.bucket.TimeUntilAvailable(1)
}

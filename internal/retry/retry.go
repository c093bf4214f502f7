// Package retry provides a generic retry executor with exponential backoff
// and jitter, driven by an injected error classifier. It is independent of
// any particular operation or transport: callers supply the operation, the
// attempt budget, the delay schedule, and the predicate deciding which
// failures are worth re-attempting.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// State identifies a point in a retry sequence's lifecycle.
type State string

// Retry sequence states. Succeeded, Exhausted, and Aborted are terminal.
const (
	StateAttempting     State = "attempting"
	StateRetryScheduled State = "retry_scheduled"
	StateSucceeded      State = "succeeded"
	StateExhausted      State = "exhausted"
	StateAborted        State = "aborted"
)

// Transition describes one observable state change in a retry sequence.
// Observation is for logging and telemetry only; the retry decision depends
// solely on the classifier and the remaining attempt budget.
type Transition struct {
	State   State
	Attempt int           // 1-based attempt number
	Delay   time.Duration // set only for StateRetryScheduled
	Err     error         // set for failure-driven transitions
}

// Observer receives retry state transitions. It must not block for long and
// cannot influence control flow.
type Observer func(Transition)

// Policy bounds a retry sequence: how many attempts to make and how long to
// wait between them. Delays grow exponentially from BaseDelay, are capped at
// MaxDelay, and carry up to 100ms of uniform jitter to desynchronize
// concurrent retrying clients.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// jitterRange is the width of the uniform random offset added to each delay.
const jitterRange = 100 * time.Millisecond

// normalize clamps out-of-range policy values to usable defaults.
func (p Policy) normalize() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

// ExhaustedError reports that every attempt in the budget failed retryably.
// It carries the total number of attempts made and unwraps to the last error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("exhausted %d retry attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Option configures an Execute call.
type Option func(*settings)

type settings struct {
	observer Observer
	logger   *slog.Logger
}

// WithObserver registers an observer for state transitions.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}

// WithLogger sets the logger used for transition logging.
// Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// Execute runs op up to policy.MaxAttempts times.
//
// After a failure, isRetryable classifies the error: non-retryable failures
// abort the sequence immediately and propagate unchanged; retryable failures
// sleep for min(MaxDelay, BaseDelay*2^(attempt-1)) plus jitter and re-attempt
// while budget remains. When the budget runs out the last error is wrapped in
// an ExhaustedError carrying the attempt count.
//
// The second return value is the number of retries performed, i.e. attempts
// beyond the first. Cancelling ctx during a delay aborts the sequence with
// ctx's error; an in-flight attempt is never interrupted by this package.
// The delay is local to the calling sequence and holds no shared locks.
func Execute[T any](
	ctx context.Context,
	policy Policy,
	isRetryable func(error) bool,
	op func(context.Context) (T, error),
	opts ...Option,
) (T, int, error) {
	var zero T

	cfg := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy = policy.normalize()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	observe := func(tr Transition) {
		if cfg.observer != nil {
			cfg.observer(tr)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		observe(Transition{State: StateAttempting, Attempt: attempt})
		cfg.logger.DebugContext(ctx, "executing attempt",
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts)

		result, err := op(ctx)
		if err == nil {
			observe(Transition{State: StateSucceeded, Attempt: attempt})
			return result, attempt - 1, nil
		}
		lastErr = err

		if !isRetryable(err) {
			observe(Transition{State: StateAborted, Attempt: attempt, Err: err})
			cfg.logger.WarnContext(ctx, "non-retryable failure, aborting",
				"attempt", attempt,
				"error", err)
			return zero, attempt - 1, err
		}

		if attempt == policy.MaxAttempts {
			break
		}

		delay := backoffDelay(policy, attempt, rng)
		observe(Transition{State: StateRetryScheduled, Attempt: attempt, Delay: delay, Err: err})
		cfg.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			observe(Transition{State: StateAborted, Attempt: attempt, Err: ctx.Err()})
			return zero, attempt - 1, fmt.Errorf("retry cancelled during delay: %w", ctx.Err())
		}
	}

	observe(Transition{State: StateExhausted, Attempt: policy.MaxAttempts, Err: lastErr})
	cfg.logger.WarnContext(ctx, "retry attempts exhausted",
		"attempts", policy.MaxAttempts,
		"error", lastErr)

	return zero, policy.MaxAttempts - 1, &ExhaustedError{
		Attempts: policy.MaxAttempts,
		Last:     lastErr,
	}
}

// backoffDelay computes the wait before the attempt following a 1-based
// failed attempt: capped exponential growth plus uniform jitter.
func backoffDelay(policy Policy, attempt int, rng *rand.Rand) time.Duration {
	backoff := float64(policy.BaseDelay) * math.Pow(2, float64(attempt-1))
	jitter := rng.Float64() * float64(jitterRange)

	delay := time.Duration(backoff + jitter)
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}
	return delay
}

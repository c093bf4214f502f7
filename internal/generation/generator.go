package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/chirp/internal/domain"
	"github.com/phrazzld/chirp/internal/ratelimit"
	"github.com/phrazzld/chirp/internal/retry"
)

// Config bounds the generator's two retry loops and its validation tolerance.
//
// Transport retries (MaxAttempts, BaseDelay, MaxDelay) govern each gateway
// call: 5xx-equivalents, connection failures, and rate-limit rejections back
// off and re-send the same prompt. Validation retries (MaxValidationAttempts)
// govern whole generation attempts: a response that fails parsing re-issues
// the prompt from scratch, since the fault may be nondeterministic model
// output. The two budgets are independent.
type Config struct {
	MaxAttempts           int
	BaseDelay             time.Duration
	MaxDelay              time.Duration
	MaxValidationAttempts int
	WordCountTolerance    int
}

// Generator defaults, applied when config values are out of range.
const (
	defaultMaxAttempts           = 3
	defaultBaseDelay             = time.Second
	defaultMaxDelay              = 10 * time.Second
	defaultMaxValidationAttempts = 3
)

// Result is a successful generation outcome: the validated tweet and how many
// gateway calls beyond the first it took to get there.
type Result struct {
	Tweet   *domain.Tweet
	Retries int
}

// Generator orchestrates tweet generation: it builds the prompt, admits the
// request through the rate limiter, calls the gateway under the transport
// retry policy, and validates the response under the validation retry policy.
type Generator struct {
	logger    *slog.Logger
	gateway   Gateway
	limiter   *ratelimit.Limiter
	validator *Validator
	cfg       Config
}

// NewGenerator creates a Generator with the provided collaborators.
// Out-of-range config values fall back to defaults with a warning, matching
// the configuration's documented defaults.
func NewGenerator(logger *slog.Logger, gateway Gateway, limiter *ratelimit.Limiter, cfg Config) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: gateway cannot be nil", ErrInvalidConfig)
	}
	if limiter == nil {
		return nil, fmt.Errorf("%w: rate limiter cannot be nil", ErrInvalidConfig)
	}

	if cfg.MaxAttempts < 1 {
		logger.Warn("invalid max attempts, using default",
			"configured", cfg.MaxAttempts,
			"default", defaultMaxAttempts)
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.MaxValidationAttempts < 1 {
		cfg.MaxValidationAttempts = defaultMaxValidationAttempts
	}

	return &Generator{
		logger:    logger,
		gateway:   gateway,
		limiter:   limiter,
		validator: NewValidator(cfg.WordCountTolerance),
		cfg:       cfg,
	}, nil
}

// GenerateTweet produces a validated tweet for the request.
//
// Invalid requests fail immediately without consuming rate-limit budget or
// attempts. Transport failures retry per the backoff policy; a response that
// fails validation re-issues the whole generation attempt. The returned
// error is always typed: a domain validation error, a *StatusError, a
// *ParseError, or a *retry.ExhaustedError carrying the attempt count.
func (g *Generator) GenerateTweet(ctx context.Context, req domain.TweetRequest) (*Result, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generating tweet",
		"topic", req.Topic,
		"tone", req.Tone,
		"max_words", req.MaxWords)

	transportPolicy := retry.Policy{
		MaxAttempts: g.cfg.MaxAttempts,
		BaseDelay:   g.cfg.BaseDelay,
		MaxDelay:    g.cfg.MaxDelay,
	}
	validationPolicy := retry.Policy{
		MaxAttempts: g.cfg.MaxValidationAttempts,
		BaseDelay:   g.cfg.BaseDelay,
		MaxDelay:    g.cfg.MaxDelay,
	}

	calls := 0

	// One rate-limited gateway call. Admission consumes no attempt budget
	// of its own: a rejection is a retryable failure for the transport
	// loop, whose delay happens outside the bucket's lock.
	send := func(ctx context.Context) (string, error) {
		if !g.limiter.Allow() {
			wait := g.limiter.TimeUntilReset()
			g.logger.WarnContext(ctx, "rate limit exceeded",
				"retry_in", wait)
			return "", fmt.Errorf("%w: next request available in %s", ErrRateLimited, wait.Round(time.Millisecond))
		}

		calls++
		return g.gateway.Send(ctx, prompt)
	}

	// One whole generation attempt: send under transport retries, then
	// validate the response.
	attempt := func(ctx context.Context) (*domain.Tweet, error) {
		raw, _, err := retry.Execute(ctx, transportPolicy, TransportRetryable, send,
			retry.WithLogger(g.logger))
		if err != nil {
			return nil, err
		}

		tweet, err := g.validator.ParseTweet(raw)
		if err != nil {
			g.logger.WarnContext(ctx, "response failed validation",
				"error", err)
			return nil, err
		}
		return tweet, nil
	}

	validationRetryable := func(err error) bool {
		return errors.Is(err, ErrInvalidResponse)
	}

	tweet, _, err := retry.Execute(ctx, validationPolicy, validationRetryable, attempt,
		retry.WithLogger(g.logger))

	retries := calls - 1
	if retries < 0 {
		retries = 0
	}

	if err != nil {
		g.logger.ErrorContext(ctx, "tweet generation failed",
			"gateway_calls", calls,
			"error", err)
		return nil, fmt.Errorf("%w after %d gateway calls: %w", ErrGenerationFailed, calls, err)
	}

	g.logger.InfoContext(ctx, "tweet generation successful",
		"tweet_id", tweet.ID.String(),
		"gateway_calls", calls,
		"retries", retries)

	return &Result{Tweet: tweet, Retries: retries}, nil
}

// Validator exposes the generator's response validator, primarily so callers
// can validate raw output without issuing a request.
func (g *Generator) Validator() *Validator {
	return g.validator
}

// Package main implements the chirp command line tool: an interactive
// chatbot and a one-shot tweet generator over the Gemini API, with local
// rate limiting, retries, and response validation.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/phrazzld/chirp/internal/chat"
	"github.com/phrazzld/chirp/internal/config"
	"github.com/phrazzld/chirp/internal/domain"
	"github.com/phrazzld/chirp/internal/generation"
	"github.com/phrazzld/chirp/internal/memory"
	"github.com/phrazzld/chirp/internal/platform/gemini"
	"github.com/phrazzld/chirp/internal/platform/logger"
	"github.com/phrazzld/chirp/internal/ratelimit"
)

func main() {
	topic := flag.String("topic", "", "generate a single tweet about this topic instead of chatting")
	tone := flag.String("tone", string(domain.ToneCasual), "tweet tone (professional, humorous, casual, excited, informative, sarcastic)")
	words := flag.Int("words", 20, "target word count for the tweet (5-50)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *topic, *tone, *words); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, and dispatches to the requested
// mode: one-shot generation when a topic is given, interactive chat otherwise.
func run(ctx context.Context, topic, tone string, words int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"requests_per_minute", cfg.RateLimit.RequestsPerMinute)

	gateway, err := gemini.NewGateway(ctx, log, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create Gemini gateway: %w", err)
	}

	if topic != "" {
		return generateTweet(ctx, log, cfg, gateway, topic, tone, words)
	}
	return runChat(ctx, log, cfg, gateway)
}

// generateTweet runs one rate-limited, retried, validated generation and
// prints the result alongside the limiter's remaining budget.
func generateTweet(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	gateway generation.Gateway,
	topic, tone string,
	words int,
) error {
	req, err := domain.NewTweetRequest(topic, domain.Tone(tone), words)
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	limiter, err := ratelimit.NewLimiter(cfg.RateLimit.RequestsPerMinute)
	if err != nil {
		return err
	}

	generator, err := generation.NewGenerator(log, gateway, limiter, generation.Config{
		MaxAttempts:           cfg.Retry.MaxAttempts,
		BaseDelay:             time.Duration(cfg.Retry.BaseDelaySeconds * float64(time.Second)),
		MaxDelay:              time.Duration(cfg.Retry.MaxDelaySeconds * float64(time.Second)),
		MaxValidationAttempts: cfg.Generation.MaxValidationAttempts,
		WordCountTolerance:    cfg.Generation.WordCountTolerance,
	})
	if err != nil {
		return err
	}

	result, err := generator.GenerateTweet(ctx, req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(struct {
		Tweet   *domain.Tweet         `json:"tweet"`
		Retries int                   `json:"retries"`
		Limit   ratelimit.LimitStatus `json:"rate_limit"`
	}{result.Tweet, result.Retries, limiter.Status()}, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}

// runChat starts the interactive chatbot on stdin/stdout.
func runChat(ctx context.Context, log *slog.Logger, cfg *config.Config, gateway generation.Gateway) error {
	window, err := memory.NewWindow(cfg.Chat.MemoryWindow)
	if err != nil {
		return err
	}

	bot, err := chat.NewBot(log, gateway, window, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	err = bot.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

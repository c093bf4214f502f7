package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/chirp/internal/config"
	"github.com/phrazzld/chirp/internal/generation"
)

// Gateway implements the generation.Gateway interface using Google's Gemini
// API. It owns transport concerns: authentication, per-call timeouts, and
// translating Gemini API failures into the generation package's taxonomy.
type Gateway struct {
	logger  *slog.Logger
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGateway creates a Gateway with the provided dependencies. The
// configuration is validated before the client is constructed.
func NewGateway(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Gateway, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Gateway{
		logger:  logger,
		client:  client,
		model:   cfg.ModelName,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// validateConfig checks the LLM configuration before any client is built.
func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}
	return nil
}

// Send submits a prompt to the Gemini API and returns the raw response text.
//
// Failures map into the generation taxonomy: API status codes become
// *generation.StatusError (the retry layer treats 5xx and 429 as transient),
// connection and deadline failures wrap generation.ErrTransport, safety
// blocks wrap generation.ErrContentBlocked, and structurally empty responses
// wrap generation.ErrInvalidResponse.
func (g *Gateway) Send(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %q", generation.ErrContentBlocked,
			resp.Candidates[0].FinishReason)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		"response_length", len(text))

	return text, nil
}

// classifyError maps a Gemini client failure into the generation taxonomy.
// API errors carry an HTTP status code; everything else is a transport
// failure (connection loss, DNS, deadline exceeded).
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &generation.StatusError{Code: apiErr.Code, Message: apiErr.Message}
	}

	return fmt.Errorf("%w: %v", generation.ErrTransport, err)
}

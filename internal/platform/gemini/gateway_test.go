package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/phrazzld/chirp/internal/config"
	"github.com/phrazzld/chirp/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	valid := config.LLMConfig{
		GeminiAPIKey:   "key",
		ModelName:      "gemini-1.5-flash",
		TimeoutSeconds: 30,
	}
	assert.NoError(t, validateConfig(valid))

	tests := []struct {
		name   string
		mutate func(*config.LLMConfig)
	}{
		{"empty API key", func(c *config.LLMConfig) { c.GeminiAPIKey = "" }},
		{"empty model name", func(c *config.LLMConfig) { c.ModelName = "" }},
		{"zero timeout", func(c *config.LLMConfig) { c.TimeoutSeconds = 0 }},
		{"negative timeout", func(c *config.LLMConfig) { c.TimeoutSeconds = -1 }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorIs(t, validateConfig(cfg), generation.ErrInvalidConfig)
		})
	}
}

func TestNewGatewayRejectsNilLogger(t *testing.T) {
	t.Parallel()

	_, err := NewGateway(context.Background(), nil, config.LLMConfig{
		GeminiAPIKey:   "key",
		ModelName:      "gemini-1.5-flash",
		TimeoutSeconds: 30,
	})
	assert.Error(t, err)
}

func TestNewGatewayRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewGateway(context.Background(), testLogger(), config.LLMConfig{})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	t.Run("API status codes become StatusError", func(t *testing.T) {
		t.Parallel()

		err := classifyError(genai.APIError{Code: 503, Message: "overloaded"})

		var status *generation.StatusError
		assert.True(t, errors.As(err, &status))
		assert.Equal(t, 503, status.Code)
		assert.True(t, generation.TransportRetryable(err))
	})

	t.Run("client errors are not retryable", func(t *testing.T) {
		t.Parallel()

		err := classifyError(genai.APIError{Code: 400, Message: "invalid argument"})
		assert.False(t, generation.TransportRetryable(err))
	})

	t.Run("network failures wrap ErrTransport", func(t *testing.T) {
		t.Parallel()

		err := classifyError(&net.OpError{Op: "dial", Err: errors.New("connection refused")})
		assert.ErrorIs(t, err, generation.ErrTransport)
		assert.True(t, generation.TransportRetryable(err))
	})
}

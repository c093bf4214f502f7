package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/chirp/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHIRP_LLM_GEMINI_API_KEY", "test-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.ModelName)
	assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 1.0, cfg.Retry.BaseDelaySeconds)
	assert.Equal(t, 10.0, cfg.Retry.MaxDelaySeconds)
	assert.Equal(t, 3, cfg.Generation.MaxValidationAttempts)
	assert.Equal(t, 2, cfg.Generation.WordCountTolerance)
	assert.Equal(t, 4, cfg.Chat.MemoryWindow)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CHIRP_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("CHIRP_SERVER_LOG_LEVEL", "debug")
	t.Setenv("CHIRP_RATE_LIMIT_REQUESTS_PER_MINUTE", "42")
	t.Setenv("CHIRP_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("CHIRP_GENERATION_WORD_COUNT_TOLERANCE", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 42, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 0, cfg.Generation.WordCountTolerance)
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("CHIRP_LLM_GEMINI_API_KEY", "")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "CHIRP_SERVER_LOG_LEVEL", "verbose"},
		{"zero rate limit", "CHIRP_RATE_LIMIT_REQUESTS_PER_MINUTE", "0"},
		{"negative retries", "CHIRP_RETRY_MAX_ATTEMPTS", "-1"},
		{"negative tolerance", "CHIRP_GENERATION_WORD_COUNT_TOLERANCE", "-3"},
		{"zero memory window", "CHIRP_CHAT_MEMORY_WINDOW", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CHIRP_LLM_GEMINI_API_KEY", "test-key")
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit" validate:"required"`
	Retry      RetryConfig      `mapstructure:"retry" validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Chat       ChatConfig       `mapstructure:"chat" validate:"required"`
}

// ServerConfig contains process-level settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName      string `mapstructure:"model_name" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// RateLimitConfig contains local request throttling settings.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"required,gt=0"`
}

// RetryConfig contains transport retry and backoff settings.
type RetryConfig struct {
	MaxAttempts      int     `mapstructure:"max_attempts" validate:"required,gt=0"`
	BaseDelaySeconds float64 `mapstructure:"base_delay_seconds" validate:"required,gt=0"`
	MaxDelaySeconds  float64 `mapstructure:"max_delay_seconds" validate:"required,gt=0,gtefield=BaseDelaySeconds"`
}

// GenerationConfig contains tweet generation settings.
type GenerationConfig struct {
	MaxValidationAttempts int `mapstructure:"max_validation_attempts" validate:"required,gt=0"`
	WordCountTolerance    int `mapstructure:"word_count_tolerance" validate:"gte=0"`
}

// ChatConfig contains interactive chatbot settings.
type ChatConfig struct {
	MemoryWindow int `mapstructure:"memory_window" validate:"required,gt=0"`
}

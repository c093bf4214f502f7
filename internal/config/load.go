package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads configuration from an optional config file and environment
// variables, with environment variables taking precedence. Environment keys
// use the CHIRP_ prefix with underscores for nesting, e.g.
// CHIRP_LLM_GEMINI_API_KEY or CHIRP_RATE_LIMIT_REQUESTS_PER_MINUTE.
// Returns a populated Config or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHIRP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; env vars and defaults cover it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers the documented default for every setting. The API
// key defaults to empty so the key is known to viper for env overrides;
// validation rejects the empty value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-1.5-flash")
	v.SetDefault("llm.timeout_seconds", 30)

	v.SetDefault("rate_limit.requests_per_minute", 10)

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay_seconds", 1.0)
	v.SetDefault("retry.max_delay_seconds", 10.0)

	v.SetDefault("generation.max_validation_attempts", 3)
	v.SetDefault("generation.word_count_tolerance", 2)

	v.SetDefault("chat.memory_window", 4)
}

// validate runs struct validation over the loaded configuration and wraps
// failures in ErrInvalidConfig.
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("%w: field %s failed on the %q rule", ErrInvalidConfig, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// STUDYFORGE_ prefix with underscores for nesting (for example
// STUDYFORGE_SERVER_PORT) and take precedence over file values.
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables and defaults apply.
	}

	v.SetEnvPrefix("STUDYFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not surface env-only keys through Unmarshal, so
	// bind every known key explicitly.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configKeys lists every key reachable through the environment.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"cache.backend",
	"cache.redis_addr",
	"cache.ttl_seconds",
	"cache.sweep_interval_seconds",
	"queue.async",
	"queue.worker_count",
	"queue.size",
	"llm.gemini_api_key",
	"llm.model_name",
	"llm.max_retries",
	"llm.retry_delay_seconds",
	"ollama.base_url",
	"ollama.model",
	"ollama.embed_model",
	"search.serper_api_key",
	"search.max_results",
	"retrieval.top_k",
	"retrieval.max_context_chars",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_seconds", 1800)
	v.SetDefault("cache.sweep_interval_seconds", 300)
	v.SetDefault("queue.async", true)
	v.SetDefault("queue.worker_count", 2)
	v.SetDefault("queue.size", 100)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("ollama.base_url", "http://127.0.0.1:11434")
	v.SetDefault("ollama.model", "llama3.1")
	v.SetDefault("ollama.embed_model", "nomic-embed-text")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("retrieval.top_k", 4)
	v.SetDefault("retrieval.max_context_chars", 8000)
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Queue     QueueConfig     `mapstructure:"queue" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"required"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Search    SearchConfig    `mapstructure:"search"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL disables persistence; history endpoints then serve empty
// results.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string `mapstructure:"backend" validate:"required,oneof=memory redis"`

	// RedisAddr is required when Backend is "redis".
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`

	// TTLSeconds bounds how long a generation result is served from cache.
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"gt=0"`

	// SweepIntervalSeconds sets the period of the background eviction
	// sweep for the memory backend. Zero disables the sweep.
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"gte=0"`
}

// QueueConfig controls the background job machinery.
type QueueConfig struct {
	// Async defers generation to the worker pool instead of running it
	// on the request path.
	Async bool `mapstructure:"async"`

	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
	Size        int `mapstructure:"size" validate:"gt=0"`
}

// LLMConfig contains settings for the remote generation backend.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// OllamaConfig contains settings for the local generation backend.
type OllamaConfig struct {
	BaseURL    string `mapstructure:"base_url" validate:"omitempty,url"`
	Model      string `mapstructure:"model"`
	EmbedModel string `mapstructure:"embed_model"`
}

// SearchConfig contains settings for the web search enrichment. An empty
// API key disables search; the fallback workflow then synthesizes from
// the topic alone.
type SearchConfig struct {
	SerperAPIKey string `mapstructure:"serper_api_key"`
	MaxResults   int    `mapstructure:"max_results" validate:"gte=0"`
}

// RetrievalConfig controls the retrieval-augmented workflow.
type RetrievalConfig struct {
	TopK            int `mapstructure:"top_k" validate:"gte=0"`
	MaxContextChars int `mapstructure:"max_context_chars" validate:"gte=0"`
}

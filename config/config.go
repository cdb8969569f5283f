package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Store     StoreConfig
	Matching  MatchingConfig
	Ingestion IngestionConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds the hosted intent-classifier configuration. The API key
// is optional; without one the assistant still answers keyword commands and
// asks the user to configure a key for anything else.
type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	BaseURL         string  `mapstructure:"base_url"`
	Model           string  `mapstructure:"model"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

// StoreConfig holds persistence configuration. With no Supabase URL the
// server falls back to the in-memory store.
type StoreConfig struct {
	SupabaseURL string `mapstructure:"supabase_url"`
	SupabaseKey string `mapstructure:"supabase_key"`
	Table       string `mapstructure:"table"`
}

// MatchingConfig holds fuzzy matcher tuning
type MatchingConfig struct {
	Threshold      float64 `mapstructure:"threshold"`
	MaxDistance    int     `mapstructure:"max_distance"`
	MinMatchLength int     `mapstructure:"min_match_length"`
}

// IngestionConfig holds duplicate detection tuning
type IngestionConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
}

// CacheConfig holds intent cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/grocertrack/")

	// Environment variable settings
	v.SetEnvPrefix("GROCERTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Gemini defaults. The empty api_key default registers the key so the
	// env var binds without a config file.
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.max_output_tokens", 500)

	// Store defaults
	v.SetDefault("store.supabase_url", "")
	v.SetDefault("store.supabase_key", "")
	v.SetDefault("store.table", "grocery_items")

	// Matching defaults
	v.SetDefault("matching.threshold", 0.4)
	v.SetDefault("matching.max_distance", 100)
	v.SetDefault("matching.min_match_length", 2)

	// Ingestion defaults
	v.SetDefault("ingestion.fuzzy_threshold", 0.85)

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.SupabaseURL != "" && config.Store.SupabaseKey == "" {
		return fmt.Errorf("Supabase key is required when a Supabase URL is set (set GROCERTRACK_STORE_SUPABASE_KEY)")
	}

	if t := config.Matching.Threshold; t <= 0 || t >= 1 {
		return fmt.Errorf("matching threshold must be in (0, 1), got: %v", t)
	}

	if t := config.Ingestion.FuzzyThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("ingestion fuzzy threshold must be in (0, 1], got: %v", t)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}

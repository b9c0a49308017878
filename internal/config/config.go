package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Cache backend selectors
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the application configuration, read from GAMEVERSE_*
// environment variables or a .env file
type Config struct {
	// APIBaseURL is the GameVerse backend, e.g. https://api.gameverse.example/api
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// TokenFile is where the access token is persisted between runs
	TokenFile string `mapstructure:"TOKEN_FILE"`

	// ListenAddr is the web front end's bind address
	ListenAddr string `mapstructure:"LISTEN_ADDR"`

	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// CacheBackend selects memory or redis
	CacheBackend string `mapstructure:"CACHE_BACKEND"`
	// RedisURL is required when CacheBackend is redis
	RedisURL string `mapstructure:"REDIS_URL"`

	SearchDebounce  time.Duration `mapstructure:"SEARCH_DEBOUNCE"`
	SuggestDebounce time.Duration `mapstructure:"SUGGEST_DEBOUNCE"`
	PageSize        int           `mapstructure:"PAGE_SIZE"`
	SuggestLimit    int           `mapstructure:"SUGGEST_LIMIT"`
}

// Load reads configuration from the environment and an optional .env
// file in the working directory. Environment variables win over the
// file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GAMEVERSE")
	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("TOKEN_FILE", "")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	v.SetDefault("CACHE_BACKEND", CacheMemory)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SEARCH_DEBOUNCE", 500*time.Millisecond)
	v.SetDefault("SUGGEST_DEBOUNCE", 450*time.Millisecond)
	v.SetDefault("PAGE_SIZE", 50)
	v.SetDefault("SUGGEST_LIMIT", 8)

	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// Missing .env is fine; a malformed one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.CacheBackend != CacheMemory && c.CacheBackend != CacheRedis {
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.CacheBackend == CacheRedis && c.RedisURL == "" {
		return fmt.Errorf("redis URL is required when the cache backend is redis")
	}
	return nil
}

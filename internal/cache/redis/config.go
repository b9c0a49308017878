package redis

import "time"

// Config holds Redis connection and expiry settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings per entry type
	GameTTL        time.Duration
	FiltersTTL     time.Duration
	SuggestionsTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GameTTL:        time.Hour,
		FiltersTTL:     6 * time.Hour,
		SuggestionsTTL: 15 * time.Minute,
	}
}

package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gameverse/gameverse-go/internal/config"
)

var errNotLoggedIn = errors.New("not logged in; run 'gameverse auth login' first")

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("GAMEVERSE_SERVER", "http://localhost:5000/api"),
		Token:     os.Getenv("GAMEVERSE_TOKEN"),
		TokenFile: getEnvOrDefault("GAMEVERSE_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// appConfig translates the CLI flags into an application config
func (c *Config) appConfig() *config.Config {
	return &config.Config{
		APIBaseURL:   c.ServerURL,
		TokenFile:    c.TokenFile,
		CacheBackend: config.CacheMemory,
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gameverse/token"
	}
	return filepath.Join(home, ".gameverse", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gameverse/gameverse-go/internal/cache"
	memorycache "github.com/gameverse/gameverse-go/internal/cache/memory"
	rediscache "github.com/gameverse/gameverse-go/internal/cache/redis"
	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/config"
	"github.com/gameverse/gameverse-go/internal/dependencies/clock"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/ranking"
	"github.com/gameverse/gameverse-go/internal/search"
	"github.com/gameverse/gameverse-go/internal/session"
)

// App contains all wired application components
type App struct {
	// Cache
	Cache cache.Cache

	// External dependencies
	Clock clock.Clock

	Client  *client.Client
	Session *session.Store
	Catalog *catalog.Service
	Ranking *ranking.Service
	Search  *search.Engine
	Suggest *search.Suggester
}

// Config holds configuration for the application factory
type Config struct {
	// App is the loaded application configuration
	App *config.Config
	// Credentials overrides token persistence (optional)
	// If nil, a file store at App.TokenFile (or its default path) is used
	Credentials session.CredentialStore
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// OnResults receives search snapshots (optional)
	OnResults func(search.Results)
	// OnSuggestions receives suggestion lists (optional)
	OnSuggestions func([]model.Game)
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.App == nil {
		return nil, errors.New("App config required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create the cache based on backend type
	var store cache.Cache
	switch cfg.App.CacheBackend {
	case config.CacheMemory, "":
		store = memorycache.New()
	case config.CacheRedis:
		redisCfg := rediscache.DefaultConfig()
		redisCfg.URL = cfg.App.RedisURL
		redisCache, err := rediscache.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisCache
	default:
		return nil, errors.New("invalid CacheBackend: must be 'memory' or 'redis'")
	}

	creds := cfg.Credentials
	if creds == nil {
		creds = session.NewFileStore(cfg.App.TokenFile)
	}

	return newWithDependencies(cfg, store, creds, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg Config, store cache.Cache, creds session.CredentialStore, clk clock.Clock, logger *slog.Logger) *App {
	// The client reads its bearer token from the session store, and the
	// session store issues requests through the client. The closure over
	// sessionStore breaks the cycle; it is assigned just below.
	var sessionStore *session.Store
	timeout := cfg.App.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	apiClient := client.New(cfg.App.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: timeout}),
		client.WithTokenSource(func() string {
			if sessionStore == nil {
				return ""
			}
			return sessionStore.Token()
		}),
	)
	sessionStore = session.New(apiClient, creds, clk, logger)

	catalogService := catalog.New(apiClient, store, logger)
	rankingService := ranking.NewService(apiClient, catalogService, logger)

	engine := search.New(apiClient, search.Config{
		Debounce: cfg.App.SearchDebounce,
		PageSize: cfg.App.PageSize,
	}, logger, cfg.OnResults)
	suggester := search.NewSuggester(apiClient, store, search.SuggestConfig{
		Debounce: cfg.App.SuggestDebounce,
		Limit:    cfg.App.SuggestLimit,
	}, logger, cfg.OnSuggestions)

	return &App{
		Cache:   store,
		Clock:   clk,
		Client:  apiClient,
		Session: sessionStore,
		Catalog: catalogService,
		Ranking: rankingService,
		Search:  engine,
		Suggest: suggester,
	}
}

// Close releases held resources, e.g. the redis connection
func (a *App) Close() error {
	if closer, ok := a.Cache.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gameverse/gameverse-go/internal/cache"
	"github.com/gameverse/gameverse-go/internal/model"
)

// Cache is a Redis-backed implementation of the cache interface
type Cache struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis cache instance
func New(cfg Config) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis cache with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Cache {
	return &Cache{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)

func (c *Cache) GetGame(ctx context.Context, id int) (*model.Game, error) {
	data, err := c.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *Cache) SetGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gameKey(game.ID), data, c.cfg.GameTTL).Err()
}

func (c *Cache) GetFilters(ctx context.Context) (*model.Filters, error) {
	data, err := c.client.Get(ctx, filtersKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, err
	}

	var filters model.Filters
	if err := json.Unmarshal(data, &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

func (c *Cache) SetFilters(ctx context.Context, filters *model.Filters) error {
	data, err := json.Marshal(filters)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, filtersKey(), data, c.cfg.FiltersTTL).Err()
}

func (c *Cache) GetSuggestions(ctx context.Context, query string) ([]model.Game, error) {
	data, err := c.client.Get(ctx, suggestionsKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, err
	}

	var games []model.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Cache) SetSuggestions(ctx context.Context, query string, games []model.Game) error {
	data, err := json.Marshal(games)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, suggestionsKey(query), data, c.cfg.SuggestionsTTL).Err()
}

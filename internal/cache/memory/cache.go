package memory

import (
	"context"
	"sync"

	"github.com/gameverse/gameverse-go/internal/cache"
	"github.com/gameverse/gameverse-go/internal/model"
)

// Cache is an in-memory implementation of the cache interface. Entries
// live for the process lifetime; it is the default when no Redis is
// configured and the backing store for tests.
type Cache struct {
	mu sync.RWMutex

	games       map[int]*model.Game
	filters     *model.Filters
	suggestions map[string][]model.Game
}

// New creates a new in-memory cache
func New() *Cache {
	return &Cache{
		games:       make(map[int]*model.Game),
		suggestions: make(map[string][]model.Game),
	}
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)

func (c *Cache) GetGame(ctx context.Context, id int) (*model.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	game, ok := c.games[id]
	if !ok {
		return nil, cache.ErrMiss
	}
	return game, nil
}

func (c *Cache) SetGame(ctx context.Context, game *model.Game) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.games[game.ID] = game
	return nil
}

func (c *Cache) GetFilters(ctx context.Context) (*model.Filters, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.filters == nil {
		return nil, cache.ErrMiss
	}
	return c.filters, nil
}

func (c *Cache) SetFilters(ctx context.Context, filters *model.Filters) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = filters
	return nil
}

func (c *Cache) GetSuggestions(ctx context.Context, query string) ([]model.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	games, ok := c.suggestions[query]
	if !ok {
		return nil, cache.ErrMiss
	}
	return games, nil
}

func (c *Cache) SetSuggestions(ctx context.Context, query string, games []model.Game) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions[query] = games
	return nil
}

package cache

import (
	"context"
	"errors"

	"github.com/gameverse/gameverse-go/internal/model"
)

// ErrMiss is returned when a key is absent or expired
var ErrMiss = errors.New("cache miss")

// Cache stores read-only catalog data fetched from the backend so repeat
// lookups skip the network. Entries expire; a miss is never an error for
// callers, just a signal to fetch.
type Cache interface {
	// Game detail operations
	GetGame(ctx context.Context, id int) (*model.Game, error)
	SetGame(ctx context.Context, game *model.Game) error

	// Filter vocabulary operations
	GetFilters(ctx context.Context) (*model.Filters, error)
	SetFilters(ctx context.Context, filters *model.Filters) error

	// Autocomplete suggestion operations, keyed by the exact query string
	GetSuggestions(ctx context.Context, query string) ([]model.Game, error)
	SetSuggestions(ctx context.Context, query string, games []model.Game) error
}

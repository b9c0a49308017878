package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameverse/gameverse-go/internal/cache"
	"github.com/gameverse/gameverse-go/internal/model"
)

func TestGameRoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()

	game := &model.Game{ID: 42, Title: "Outer Wilds"}
	require.NoError(t, c.SetGame(ctx, game))

	got, err := c.GetGame(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, game, got)

	_, err = c.GetGame(ctx, 7)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestFiltersRoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()

	_, err := c.GetFilters(ctx)
	assert.ErrorIs(t, err, cache.ErrMiss)

	filters := &model.Filters{Genres: []string{"RPG"}}
	require.NoError(t, c.SetFilters(ctx, filters))

	got, err := c.GetFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, filters, got)
}

func TestSuggestionsKeyedByExactQuery(t *testing.T) {
	c := New()
	ctx := context.Background()

	games := []model.Game{{ID: 1, Title: "Zelda"}}
	require.NoError(t, c.SetSuggestions(ctx, "zel", games))

	got, err := c.GetSuggestions(ctx, "zel")
	require.NoError(t, err)
	assert.Equal(t, games, got)

	_, err = c.GetSuggestions(ctx, "ze")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

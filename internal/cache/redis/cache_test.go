package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/gameverse/gameverse-go/internal/cache"
	"github.com/gameverse/gameverse-go/internal/model"
)

type CacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *Cache
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.cache = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *CacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

func (s *CacheSuite) TestGameRoundTrip() {
	game := &model.Game{
		ID:        42,
		Title:     "Outer Wilds",
		Platforms: []string{"PC (Windows)", "Xbox One"},
		Genres:    model.MultilingualList{FR: []string{"Aventure"}},
		Cover:     model.Image{Thumb: "t.jpg", Original: "o.jpg"},
	}

	s.Require().NoError(s.cache.SetGame(s.ctx, game))

	got, err := s.cache.GetGame(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(game, got)
}

func (s *CacheSuite) TestGameMiss() {
	_, err := s.cache.GetGame(s.ctx, 999)
	s.ErrorIs(err, cache.ErrMiss)
}

func (s *CacheSuite) TestGameExpires() {
	game := &model.Game{ID: 1, Title: "Hades"}
	s.Require().NoError(s.cache.SetGame(s.ctx, game))

	s.mini.FastForward(DefaultConfig().GameTTL + time.Second)

	_, err := s.cache.GetGame(s.ctx, 1)
	s.ErrorIs(err, cache.ErrMiss)
}

func (s *CacheSuite) TestFiltersRoundTrip() {
	filters := &model.Filters{
		Genres:    []string{"Aventure", "RPG"},
		Platforms: []string{"PC (Windows)"},
	}

	s.Require().NoError(s.cache.SetFilters(s.ctx, filters))

	got, err := s.cache.GetFilters(s.ctx)
	s.Require().NoError(err)
	s.Equal(filters, got)
}

func (s *CacheSuite) TestFiltersMiss() {
	_, err := s.cache.GetFilters(s.ctx)
	s.ErrorIs(err, cache.ErrMiss)
}

func (s *CacheSuite) TestSuggestionsKeyedByExactQuery() {
	games := []model.Game{{ID: 1, Title: "Zelda"}}
	s.Require().NoError(s.cache.SetSuggestions(s.ctx, "zel", games))

	got, err := s.cache.GetSuggestions(s.ctx, "zel")
	s.Require().NoError(err)
	s.Equal(games, got)

	_, err = s.cache.GetSuggestions(s.ctx, "zeld")
	s.ErrorIs(err, cache.ErrMiss)
}

func (s *CacheSuite) TestSuggestionsExpire() {
	s.Require().NoError(s.cache.SetSuggestions(s.ctx, "zel", []model.Game{{ID: 1}}))

	s.mini.FastForward(DefaultConfig().SuggestionsTTL + time.Second)

	_, err := s.cache.GetSuggestions(s.ctx, "zel")
	s.ErrorIs(err, cache.ErrMiss)
}

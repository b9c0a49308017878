package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gameverse/gameverse-go/internal/cache"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
)

// FeedColumn is one category of the home feed with its games
type FeedColumn struct {
	Category string
	Games    []model.Game
}

// Service fetches catalog data, reading game details and the filter
// vocabulary through the cache
type Service struct {
	api    *client.Client
	cache  cache.Cache
	logger *slog.Logger
}

// New creates a new catalog service
func New(api *client.Client, c cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		cache:  c,
		logger: logger,
	}
}

// HomeFeed builds the home page columns: the backend picks random genres,
// then each genre's games are fetched. A failing column is logged and
// skipped; the feed degrades rather than aborts.
func (s *Service) HomeFeed(ctx context.Context) ([]FeedColumn, error) {
	genres, err := s.api.RandomGenres(ctx)
	if err != nil {
		return nil, err
	}

	columns := make([]FeedColumn, 0, len(genres))
	for _, genre := range genres {
		games, err := s.api.GamesByCategory(ctx, genre)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			s.logger.Warn("failed to load feed category",
				slog.String("category", genre),
				slog.String("error", err.Error()),
			)
			continue
		}
		columns = append(columns, FeedColumn{Category: genre, Games: games})
	}
	return columns, nil
}

// Popular returns the most-added games
func (s *Service) Popular(ctx context.Context) ([]model.Game, error) {
	return s.api.PopularGames(ctx)
}

// Game returns a single game, serving from the cache when possible
func (s *Service) Game(ctx context.Context, id int) (*model.Game, error) {
	if game, err := s.cache.GetGame(ctx, id); err == nil {
		return game, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("game cache read failed", slog.String("error", err.Error()))
	}

	game, err := s.api.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetGame(ctx, game); err != nil {
		s.logger.Warn("game cache write failed", slog.String("error", err.Error()))
	}
	return game, nil
}

// Filters returns the full filter vocabulary, serving from the cache
// when possible
func (s *Service) Filters(ctx context.Context) (*model.Filters, error) {
	if filters, err := s.cache.GetFilters(ctx); err == nil {
		return filters, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("filters cache read failed", slog.String("error", err.Error()))
	}

	filters, err := s.api.GetFilters(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFilters(ctx, filters); err != nil {
		s.logger.Warn("filters cache write failed", slog.String("error", err.Error()))
	}
	return filters, nil
}

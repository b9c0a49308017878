package ranking

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
)

// DefaultSize is how many games a ranking holds
const DefaultSize = 10

// PodiumSize is how many games stand on the podium
const PodiumSize = 3

// FilterSource provides the filter vocabulary; satisfied by the catalog
// service so the ranking hub benefits from its cache
type FilterSource interface {
	Filters(ctx context.Context) (*model.Filters, error)
}

// Service builds the ranking hub and fetches rankings
type Service struct {
	api     *client.Client
	filters FilterSource
	logger  *slog.Logger
	size    int
	top     int
}

func NewService(api *client.Client, filters FilterSource, logger *slog.Logger) *Service {
	return &Service{
		api:     api,
		filters: filters,
		logger:  logger,
		size:    DefaultSize,
		top:     DefaultTopLimit,
	}
}

// Hub is the ranking selection screen: the most popular genres and themes
// with their full vocabularies behind an expand control, and the platform
// vocabulary grouped into console families
type Hub struct {
	TopGenres       []string
	AllGenres       []string
	TopThemes       []string
	AllThemes       []string
	PlatformGroups  []PlatformFamily
}

// Hub assembles the ranking hub from the filter vocabulary. The backend
// returns each vocabulary already sorted by popularity, so the top lists
// are plain prefixes.
func (s *Service) Hub(ctx context.Context) (*Hub, error) {
	filters, err := s.filters.Filters(ctx)
	if err != nil {
		return nil, err
	}
	return &Hub{
		TopGenres:      head(filters.Genres, s.top),
		AllGenres:      filters.Genres,
		TopThemes:      head(filters.Themes, s.top),
		AllThemes:      filters.Themes,
		PlatformGroups: GroupPlatforms(filters.Platforms),
	}, nil
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

// Ranking is an ordered top list for one facet filter
type Ranking struct {
	// Label is the display title, e.g. "Genre : Aventure" or "Nintendo"
	Label string
	Games []model.Game
}

// Podium returns the top three games
func (r *Ranking) Podium() []model.Game {
	if len(r.Games) > PodiumSize {
		return r.Games[:PodiumSize]
	}
	return r.Games
}

// Rest returns everything below the podium
func (r *Ranking) Rest() []model.Game {
	if len(r.Games) > PodiumSize {
		return r.Games[PodiumSize:]
	}
	return nil
}

// Rank fetches the most-added games matching the given facet values, e.g.
// one genre, one theme, one platform, or a whole platform family
func (s *Service) Rank(ctx context.Context, facet model.Facet, values []string, label string) (*Ranking, error) {
	selection := model.NewFilterSelection()
	for _, value := range values {
		selection.Toggle(facet, value)
	}

	result, err := s.api.SearchGames(ctx, client.SearchParams{
		Selection: selection,
		Limit:     s.size,
		SortBy:    "added",
		SortOrder: client.SortDesc,
	})
	if err != nil {
		return nil, err
	}
	return &Ranking{Label: label, Games: result.Games}, nil
}

// RankGenre ranks games in one genre
func (s *Service) RankGenre(ctx context.Context, genre string) (*Ranking, error) {
	return s.Rank(ctx, model.FacetGenres, []string{genre}, "Genre : "+displayName(genre))
}

// RankTheme ranks games in one theme
func (s *Service) RankTheme(ctx context.Context, theme string) (*Ranking, error) {
	return s.Rank(ctx, model.FacetThemes, []string{theme}, "Thème : "+displayName(theme))
}

// RankPlatform ranks games on one platform
func (s *Service) RankPlatform(ctx context.Context, platform string) (*Ranking, error) {
	return s.Rank(ctx, model.FacetPlatforms, []string{platform}, displayName(platform))
}

// RankPlatformFamily ranks games across every platform of a family
func (s *Service) RankPlatformFamily(ctx context.Context, family PlatformFamily) (*Ranking, error) {
	return s.Rank(ctx, model.FacetPlatforms, family.Platforms, family.Name)
}

// displayName trims the parenthesised qualifier some vocabulary entries
// carry, keeping the full value for the query itself
func displayName(value string) string {
	name, _, _ := strings.Cut(value, "(")
	return strings.TrimSpace(name)
}

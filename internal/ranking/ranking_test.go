package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/testutil"
)

func TestGroupPlatformsFamilies(t *testing.T) {
	families := GroupPlatforms([]string{
		"Nintendo Switch",
		"PlayStation 5",
		"Xbox Series X",
		"PC (Microsoft Windows)",
		"iOS",
		"Sega Mega Drive",
		"Game Boy Advance",
	})

	names := make([]string, len(families))
	for i, fam := range families {
		names[i] = fam.Name
	}
	assert.Equal(t, []string{"Nintendo", "PlayStation", "Xbox", "PC", "Mobile", "Retro"}, names)
	assert.Equal(t, []string{"Nintendo Switch", "Game Boy Advance"}, families[0].Platforms)
}

func TestGroupPlatformsUnknownFallsIntoRetro(t *testing.T) {
	families := GroupPlatforms([]string{"Ouya"})
	require.Len(t, families, 1)
	assert.Equal(t, "Retro", families[0].Name)
	assert.Equal(t, []string{"Ouya"}, families[0].Platforms)
}

func TestGroupPlatformsOmitsEmptyFamilies(t *testing.T) {
	families := GroupPlatforms([]string{"Nintendo 64", "Wii U"})
	require.Len(t, families, 1)
	assert.Equal(t, "Nintendo", families[0].Name)
}

func TestTopFacets(t *testing.T) {
	games := []model.Game{
		{Genres: model.MultilingualList{FR: []string{"RPG", "Aventure"}}},
		{Genres: model.MultilingualList{FR: []string{"RPG"}}},
		{Genres: model.MultilingualList{FR: []string{"Plateforme"}}},
	}

	top, all := TopFacets(games, Genres, 2)
	assert.Equal(t, []string{"RPG", "Aventure"}, top)
	assert.Equal(t, []string{"RPG", "Aventure", "Plateforme"}, all)
}

// staticFilters is a FilterSource returning a fixed vocabulary
type staticFilters struct {
	filters model.Filters
}

func (s *staticFilters) Filters(ctx context.Context) (*model.Filters, error) {
	return &s.filters, nil
}

func TestHubSlicesTopTwelve(t *testing.T) {
	genres := make([]string, 20)
	for i := range genres {
		genres[i] = fmt.Sprintf("Genre %02d", i)
	}
	source := &staticFilters{filters: model.Filters{
		Genres:    genres,
		Themes:    []string{"Fantaisie", "Science-fiction"},
		Platforms: []string{"Nintendo Switch", "PlayStation 5"},
	}}

	service := NewService(nil, source, testutil.NopLogger())
	hub, err := service.Hub(context.Background())
	require.NoError(t, err)

	assert.Len(t, hub.TopGenres, 12)
	assert.Len(t, hub.AllGenres, 20)
	assert.Equal(t, "Genre 00", hub.TopGenres[0])
	// Vocabularies shorter than the limit are shown whole
	assert.Equal(t, hub.AllThemes, hub.TopThemes)
	require.Len(t, hub.PlatformGroups, 2)
	assert.Equal(t, "Nintendo", hub.PlatformGroups[0].Name)
}

func TestRankQueriesMostAdded(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"genres":    r.URL.Query().Get("genres"),
			"limit":     r.URL.Query().Get("limit"),
			"sortBy":    r.URL.Query().Get("sortBy"),
			"sortOrder": r.URL.Query().Get("sortOrder"),
		}
		games := make([]model.Game, 10)
		for i := range games {
			games[i] = model.Game{ID: i + 1}
		}
		json.NewEncoder(w).Encode(games)
	}))
	defer server.Close()

	service := NewService(client.New(server.URL), nil, testutil.NopLogger())
	ranking, err := service.RankGenre(context.Background(), "Aventure")
	require.NoError(t, err)

	assert.Equal(t, "Aventure", gotQuery["genres"])
	assert.Equal(t, "10", gotQuery["limit"])
	assert.Equal(t, "added", gotQuery["sortBy"])
	assert.Equal(t, "desc", gotQuery["sortOrder"])

	assert.Equal(t, "Genre : Aventure", ranking.Label)
	require.Len(t, ranking.Podium(), 3)
	assert.Equal(t, 1, ranking.Podium()[0].ID)
	require.Len(t, ranking.Rest(), 7)
	assert.Equal(t, 4, ranking.Rest()[0].ID)
}

func TestRankPlatformFamilySendsEveryPlatform(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("platforms")
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	service := NewService(client.New(server.URL), nil, testutil.NopLogger())
	family := PlatformFamily{Name: "Nintendo", Platforms: []string{"Nintendo Switch", "Wii U"}}
	ranking, err := service.RankPlatformFamily(context.Background(), family)
	require.NoError(t, err)

	assert.Equal(t, "Nintendo Switch,Wii U", got)
	assert.Equal(t, "Nintendo", ranking.Label)
	assert.Empty(t, ranking.Podium())
	assert.Empty(t, ranking.Rest())
}

func TestRankLabelTrimsParenthesisedQualifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	service := NewService(client.New(server.URL), nil, testutil.NopLogger())
	ranking, err := service.RankTheme(context.Background(), "Horreur (survival horror)")
	require.NoError(t, err)
	assert.Equal(t, "Thème : Horreur", ranking.Label)
}

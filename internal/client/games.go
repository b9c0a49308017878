package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gameverse/gameverse-go/internal/model"
)

// SortOrder is the sort direction for catalog listings
type SortOrder string

// Sort directions accepted by the backend
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchParams are the query parameters for GET /games
type SearchParams struct {
	Query     string
	Selection *model.FilterSelection // nil means no facet filters
	Page      int
	Limit     int
	SortBy    string // e.g. "added"
	SortOrder SortOrder
}

// SearchResult is a page of games plus the total match count when the
// backend provides one. Total is nil for legacy bare-array responses.
type SearchResult struct {
	Games []model.Game
	Total *int
}

// searchEnvelope is the modern GET /games response shape
type searchEnvelope struct {
	Data  []model.Game `json:"data"`
	Total int          `json:"total"`
}

// SearchGames queries the catalog. The response is either a bare array
// (legacy) or a {data, total} envelope; both are handled.
func (c *Client) SearchGames(ctx context.Context, params SearchParams) (SearchResult, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if sel := params.Selection; sel != nil {
		for _, facet := range model.AllFacets {
			values := sel.Values(facet)
			if len(values) == 0 {
				continue
			}
			q.Set(string(facet), strings.Join(values, ","))
			q.Set(string(facet)+"Mode", string(sel.Mode(facet)))
		}
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
		order := params.SortOrder
		if order == "" {
			order = SortDesc
		}
		q.Set("sortOrder", string(order))
	}

	var raw json.RawMessage
	if err := c.Get(ctx, "/games", q, &raw); err != nil {
		return SearchResult{}, err
	}
	return decodeSearchResult(raw)
}

func decodeSearchResult(raw json.RawMessage) (SearchResult, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var games []model.Game
		if err := json.Unmarshal(raw, &games); err != nil {
			return SearchResult{}, fmt.Errorf("failed to parse games array: %w", err)
		}
		return SearchResult{Games: games}, nil
	}

	var env searchEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return SearchResult{}, fmt.Errorf("failed to parse games envelope: %w", err)
	}
	total := env.Total
	return SearchResult{Games: env.Data, Total: &total}, nil
}

// GetGame fetches a single game by id
func (c *Client) GetGame(ctx context.Context, id int) (*model.Game, error) {
	var game model.Game
	err := c.Get(ctx, "/games/"+strconv.Itoa(id), nil, &game)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind == KindNotFound {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetFilters fetches the full filter vocabulary
func (c *Client) GetFilters(ctx context.Context) (*model.Filters, error) {
	var filters model.Filters
	if err := c.Get(ctx, "/games/filters", nil, &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

// RandomGenres fetches the genre names the backend picked for the home feed
func (c *Client) RandomGenres(ctx context.Context) ([]string, error) {
	var genres []string
	if err := c.Get(ctx, "/games/random-genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// GamesByCategory fetches the feed games for one category
func (c *Client) GamesByCategory(ctx context.Context, category string) ([]model.Game, error) {
	q := url.Values{}
	q.Set("category", category)

	var games []model.Game
	if err := c.Get(ctx, "/games/category", q, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// PopularGames fetches the most-added games
func (c *Client) PopularGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := c.Get(ctx, "/games/popular", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

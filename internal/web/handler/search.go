package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
	"github.com/gameverse/gameverse-go/internal/web/templates"
)

// facetLabels maps facets to their display names, in AllFacets order
var facetLabels = map[model.Facet]string{
	model.FacetGenres:     "Genres",
	model.FacetPlatforms:  "Plateformes",
	model.FacetThemes:     "Thèmes",
	model.FacetDevelopers: "Développeurs",
	model.FacetPublishers: "Éditeurs",
}

// SearchHandler handles the search page
type SearchHandler struct {
	api         *client.Client
	catalog     *catalog.Service
	pageSize    int
	minQueryLen int
	logger      *slog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(api *client.Client, catalogService *catalog.Service, pageSize, minQueryLen int, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		api:         api,
		catalog:     catalogService,
		pageSize:    pageSize,
		minQueryLen: minQueryLen,
		logger:      logger,
	}
}

// Search renders the search page. Query, facet selections, combination
// modes and the page number all come from the URL so results are
// shareable links.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()

	query := strings.TrimSpace(params.Get("q"))
	page, err := strconv.Atoi(params.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	selection := selectionFromQuery(params)

	data := templates.SearchData{
		PageData: templates.PageData{
			Title: "Recherche",
			User:  middleware.GetUser(ctx),
			Flash: middleware.GetFlash(ctx),
		},
		Query:    query,
		Page:     page,
		RawQuery: encodeSearchQuery(query, selection),
	}

	// Queries below the minimum length stay local and show nothing
	queryLen := utf8.RuneCountInString(query)
	if queryLen == 0 || queryLen >= h.minQueryLen {
		result, err := h.api.SearchGames(ctx, client.SearchParams{
			Query:     query,
			Selection: selection,
			Page:      page,
			Limit:     h.pageSize,
		})
		if err != nil {
			h.logger.Error("search failed", "query", query, "error", err)
			renderError(w, r, "La recherche a échoué. Merci de réessayer.")
			return
		}
		data.Games = result.Games
		data.Total = result.Total
		data.HasMore = hasMore(result, page, h.pageSize)
	}

	filters, err := h.catalog.Filters(ctx)
	if err != nil {
		// Filters are an enhancement; the results are the page
		h.logger.Warn("filter vocabulary fetch failed", "error", err)
		filters = &model.Filters{}
	}
	for _, facet := range model.AllFacets {
		data.Facets = append(data.Facets, templates.FacetGroup{
			Facet:     facet,
			Label:     facetLabels[facet],
			Values:    filters.Values(facet),
			Selection: selection,
		})
	}

	renderPage(w, r, "search", data)
}

// selectionFromQuery rebuilds a filter selection from URL parameters:
// repeated "<facet>" values plus an optional "<facet>Mode=AND"
func selectionFromQuery(params url.Values) *model.FilterSelection {
	selection := model.NewFilterSelection()
	for _, facet := range model.AllFacets {
		for _, value := range params[string(facet)] {
			if value != "" {
				selection.Toggle(facet, value)
			}
		}
		if params.Get(string(facet)+"Mode") == string(model.ModeAll) {
			selection.SetMode(facet, model.ModeAll)
		}
	}
	return selection
}

// encodeSearchQuery serializes the query and selection back into URL
// parameters, without the page number, for pagination links
func encodeSearchQuery(query string, selection *model.FilterSelection) string {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	for _, facet := range model.AllFacets {
		for _, value := range selection.Values(facet) {
			params.Add(string(facet), value)
		}
		if selection.Mode(facet) == model.ModeAll {
			params.Set(string(facet)+"Mode", string(model.ModeAll))
		}
	}
	return params.Encode()
}

// hasMore mirrors the paging inference the interactive engine uses:
// trust the total when the backend reports one, otherwise assume a full
// page means more
func hasMore(result client.SearchResult, page, pageSize int) bool {
	if result.Total != nil {
		return page*pageSize < *result.Total
	}
	return len(result.Games) == pageSize
}

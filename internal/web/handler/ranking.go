package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gameverse/gameverse-go/internal/ranking"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
	"github.com/gameverse/gameverse-go/internal/web/templates"
)

// RankingHandler handles the ranking hub and individual rankings
type RankingHandler struct {
	ranking *ranking.Service
	logger  *slog.Logger
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(rankingService *ranking.Service, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{
		ranking: rankingService,
		logger:  logger,
	}
}

// View renders the ranking hub, plus one ranking when ?type and ?value
// select a facet entry
func (h *RankingHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hub, err := h.ranking.Hub(ctx)
	if err != nil {
		h.logger.Error("ranking hub fetch failed", "error", err)
		renderError(w, r, "Les classements sont momentanément indisponibles.")
		return
	}

	data := templates.RankingData{
		PageData: templates.PageData{
			Title: "Classements",
			User:  middleware.GetUser(ctx),
			Flash: middleware.GetFlash(ctx),
		},
		Hub: hub,
	}

	kind := r.URL.Query().Get("type")
	value := r.URL.Query().Get("value")
	if kind != "" && value != "" {
		rk, err := h.rank(ctx, hub, kind, value)
		if err != nil {
			h.logger.Error("ranking fetch failed", "type", kind, "value", value, "error", err)
			renderError(w, r, "Ce classement est momentanément indisponible.")
			return
		}
		data.Ranking = rk
	}

	renderPage(w, r, "ranking", data)
}

// rank dispatches on the ranking type. Unknown types and unknown family
// names fall back to the bare hub rather than erroring.
func (h *RankingHandler) rank(ctx context.Context, hub *ranking.Hub, kind, value string) (*ranking.Ranking, error) {
	switch kind {
	case "genre":
		return h.ranking.RankGenre(ctx, value)
	case "theme":
		return h.ranking.RankTheme(ctx, value)
	case "platform":
		return h.ranking.RankPlatform(ctx, value)
	case "family":
		for _, family := range hub.PlatformGroups {
			if family.Name == value {
				return h.ranking.RankPlatformFamily(ctx, family)
			}
		}
	}
	return nil, nil
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
	"github.com/gameverse/gameverse-go/internal/web/templates"
)

// GameHandler handles the game details page
type GameHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(catalogService *catalog.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		catalog: catalogService,
		logger:  logger,
	}
}

// View renders the details page for one game
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	game, err := h.catalog.Game(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			w.WriteHeader(http.StatusNotFound)
			renderPage(w, r, "error", templates.ErrorData{
				PageData: templates.PageData{Title: "Jeu introuvable", User: middleware.GetUser(ctx)},
				Message:  "Ce jeu n'existe pas ou n'est plus référencé.",
			})
			return
		}
		h.logger.Error("game fetch failed", "game_id", id, "error", err)
		renderError(w, r, "Le catalogue est momentanément indisponible.")
		return
	}

	user := middleware.GetUser(ctx)
	data := templates.GameData{
		PageData: templates.PageData{
			Title: game.Title,
			User:  user,
			Flash: middleware.GetFlash(ctx),
		},
		Game:       game,
		InLibrary:  user != nil && user.HasGame(game.ID),
		Authorized: user != nil,
	}

	renderPage(w, r, "game", data)
}

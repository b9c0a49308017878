package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gameverse/gameverse-go/internal/web/middleware"
)

// LibraryHandler handles library membership actions
type LibraryHandler struct {
	logger *slog.Logger
}

// NewLibraryHandler creates a new LibraryHandler
func NewLibraryHandler(logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{logger: logger}
}

// Toggle flips a game in or out of the visitor's library, then sends
// them back to the game page
func (h *LibraryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	gameID, err := strconv.Atoi(r.FormValue("game_id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	target := "/games/" + strconv.Itoa(gameID)

	sess := middleware.GetSession(r.Context())
	if err := sess.ToggleFavorite(r.Context(), gameID); err != nil {
		h.logger.Error("library toggle failed", "game_id", gameID, "error", err)
		middleware.SetFlash(w, middleware.FlashError, "Impossible de mettre à jour votre bibliothèque.")
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	if user := sess.User(); user != nil && user.HasGame(gameID) {
		middleware.SetFlash(w, middleware.FlashSuccess, "Jeu ajouté à votre bibliothèque.")
	} else {
		middleware.SetFlash(w, middleware.FlashSuccess, "Jeu retiré de votre bibliothèque.")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

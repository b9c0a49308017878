package handler

import (
	"log/slog"
	"net/http"

	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
	"github.com/gameverse/gameverse-go/internal/web/templates"
)

// HomeHandler handles the home page
type HomeHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(catalogService *catalog.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		catalog: catalogService,
		logger:  logger,
	}
}

// Home renders the home page: popular games plus the randomized genre feed
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feed, err := h.catalog.HomeFeed(ctx)
	if err != nil {
		h.logger.Error("home feed fetch failed", "error", err)
		renderError(w, r, "Le catalogue est momentanément indisponible.")
		return
	}

	popular, err := h.catalog.Popular(ctx)
	if err != nil {
		// The feed alone is still a usable page
		h.logger.Warn("popular games fetch failed", "error", err)
	}

	data := templates.HomeData{
		PageData: templates.PageData{
			Title: "Accueil",
			User:  middleware.GetUser(ctx),
			Flash: middleware.GetFlash(ctx),
		},
		Feed:    feed,
		Popular: popular,
	}

	renderPage(w, r, "home", data)
}

// renderPage writes a page template, falling back to a bare 500 when
// rendering itself fails
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, name, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderError shows the error page with a user-facing message
func renderError(w http.ResponseWriter, r *http.Request, message string) {
	data := templates.ErrorData{
		PageData: templates.PageData{
			Title: "Erreur",
			User:  middleware.GetUser(r.Context()),
		},
		Message: message,
	}
	w.WriteHeader(http.StatusInternalServerError)
	renderPage(w, r, "error", data)
}

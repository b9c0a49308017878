package web

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/ranking"
	"github.com/gameverse/gameverse-go/internal/web/handler"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	API         *client.Client
	Catalog     *catalog.Service
	Ranking     *ranking.Service
	NewSession  middleware.SessionFactory
	PageSize    int
	MinQueryLen int
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	sessionMiddleware := middleware.Session(cfg.NewSession)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	homeHandler := handler.NewHomeHandler(cfg.Catalog, cfg.Logger)
	searchHandler := handler.NewSearchHandler(cfg.API, cfg.Catalog, cfg.PageSize, cfg.MinQueryLen, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.Catalog, cfg.Logger)
	rankingHandler := handler.NewRankingHandler(cfg.Ranking, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.API, cfg.Logger)
	libraryHandler := handler.NewLibraryHandler(cfg.Logger)

	// Static files
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFiles)))

	// Public pages
	public := r.NewRoute().Subrouter()
	public.Use(sessionMiddleware)
	public.Use(flashMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet)
	public.HandleFunc("/games/{id:[0-9]+}", gameHandler.View).Methods(http.MethodGet)
	public.HandleFunc("/ranking", rankingHandler.View).Methods(http.MethodGet)

	// Auth pages and actions
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/verify-email/{token}", authHandler.VerifyEmail).Methods(http.MethodGet)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Library actions: anonymous visitors are invited to create an account
	protected := r.NewRoute().Subrouter()
	protected.Use(sessionMiddleware)
	protected.Use(flashMiddleware)
	protected.Use(middleware.RequireAuth("/register"))
	protected.HandleFunc("/library/toggle", libraryHandler.Toggle).Methods(http.MethodPost)

	return r
}

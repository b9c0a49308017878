package web

import (
	"log/slog"
	"net/http"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/dependencies/clock"
	"github.com/gameverse/gameverse-go/internal/session"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
)

// NewSessionFactory builds request-scoped session stores. Each visitor's
// token lives in their cookie, so every request gets its own store seeded
// from it; the store's own credential handling (rotation, clearing) is
// then reflected back into the cookie by the session middleware.
func NewSessionFactory(baseURL string, httpClient *http.Client, clk clock.Clock, logger *slog.Logger) middleware.SessionFactory {
	return func(token string) *session.Store {
		creds := session.NewMemoryStore()
		if token != "" {
			_ = creds.Save(token)
		}

		var store *session.Store
		api := client.New(baseURL,
			client.WithHTTPClient(httpClient),
			client.WithTokenSource(func() string {
				if store == nil {
					return ""
				}
				return store.Token()
			}),
		)
		store = session.New(api, creds, clk, logger)
		return store
	}
}

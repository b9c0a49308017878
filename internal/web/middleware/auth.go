package middleware

import (
	"context"
	"net/http"

	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/session"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"

	tokenCookieName = "gameverse_token"
)

// SessionFactory builds a request-scoped session store seeded with the
// given access token (empty for anonymous visitors)
type SessionFactory func(token string) *session.Store

// GetSession retrieves the request's session store from the context
func GetSession(ctx context.Context) *session.Store {
	sess, _ := ctx.Value(sessionContextKey).(*session.Store)
	return sess
}

// GetUser retrieves the authenticated user from the request context
// Returns nil if the visitor is anonymous
func GetUser(ctx context.Context) *model.User {
	sess := GetSession(ctx)
	if sess == nil {
		return nil
	}
	return sess.User()
}

// SetTokenCookie stores the access token in the browser
func SetTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie removes the access token cookie
func ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session returns middleware that resolves the visitor's session from the
// token cookie. Every request gets a session store in its context, even
// anonymous ones. A token the server rotated or rejected updates the
// cookie accordingly.
func Session(newSession SessionFactory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(tokenCookieName); err == nil {
				token = cookie.Value
			}

			sess := newSession(token)
			if token != "" {
				_ = sess.Resume(r.Context())
				switch current := sess.Token(); {
				case current == "":
					ClearTokenCookie(w)
				case current != token:
					SetTokenCookie(w, current)
				}
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth returns middleware that redirects anonymous visitors
func RequireAuth(redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if sess == nil || !sess.IsAuthenticated() {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

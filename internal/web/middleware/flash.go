package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const (
	flashCookieName = "flash"
	flashContextKey = contextKey("flash")
)

// Flash message types
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// GetFlash retrieves the flash message from the request context
// Returns nil if no flash message is set
func GetFlash(ctx context.Context) *FlashMessage {
	flash, _ := ctx.Value(flashContextKey).(*FlashMessage)
	return flash
}

// SetFlash sets a flash message to be displayed on the next request.
// The message is escaped because cookie values cannot carry spaces or
// accented characters.
func SetFlash(w http.ResponseWriter, flashType, message string) {
	// Encode as type:message
	value := flashType + ":" + url.QueryEscape(message)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60, // 1 minute expiry
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash returns middleware that reads and clears flash messages
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var flash *FlashMessage

			cookie, err := r.Cookie(flashCookieName)
			if err == nil && cookie.Value != "" {
				// Parse flash message
				flash = parseFlash(cookie.Value)

				// Clear the cookie
				http.SetCookie(w, &http.Cookie{
					Name:     flashCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					Expires:  time.Unix(0, 0),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), flashContextKey, flash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseFlash(value string) *FlashMessage {
	// Find first colon separator
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			message, err := url.QueryUnescape(value[i+1:])
			if err != nil {
				message = value[i+1:]
			}
			return &FlashMessage{
				Type:    value[:i],
				Message: message,
			}
		}
	}
	// If no colon, treat entire value as message with default type
	return &FlashMessage{
		Type:    FlashInfo,
		Message: value,
	}
}

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure for user-facing handling
type Kind string

// Failure kinds, one per branch of the error taxonomy
const (
	KindValidation      Kind = "validation"
	KindAuth            Kind = "authentication"
	KindUnverifiedEmail Kind = "unverified_email"
	KindConflict        Kind = "conflict"
	KindRateLimit       Kind = "rate_limit"
	KindNotFound        Kind = "not_found"
	KindServer          Kind = "server"
)

// errorBody is the error envelope the backend returns
type errorBody struct {
	Message          string `json:"message"`
	Error            string `json:"error"`
	EmailNotVerified bool   `json:"emailNotVerified"`
}

// APIError is a normalized backend failure. Message is always safe to show
// to the user: explicit server message, else a status-specific fallback,
// else a generic one.
type APIError struct {
	Kind          Kind
	Status        int
	Message       string
	ServerMessage string // raw message from the backend, may be empty
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsKind reports whether err is an APIError of the given kind
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Status-specific fallback messages, used when the backend gives no message
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Requête invalide",
	http.StatusUnauthorized:        "Authentification requise",
	http.StatusForbidden:           "Accès refusé",
	http.StatusNotFound:            "Ressource non trouvée",
	http.StatusConflict:            "Conflit (par ex. email déjà utilisé)",
	http.StatusTooManyRequests:     "Trop de requêtes",
	http.StatusInternalServerError: "Erreur serveur",
	http.StatusServiceUnavailable:  "Service indisponible",
}

const genericMessage = "Une erreur inattendue est survenue"

// newAPIError builds an APIError from a status code and decoded error body
func newAPIError(status int, body errorBody) *APIError {
	serverMsg := body.Message
	if serverMsg == "" {
		serverMsg = body.Error
	}

	msg := serverMsg
	if msg == "" {
		msg = statusMessages[status]
	}
	if msg == "" {
		msg = genericMessage
	}

	return &APIError{
		Kind:          kindForStatus(status, body.EmailNotVerified),
		Status:        status,
		Message:       msg,
		ServerMessage: serverMsg,
	}
}

func kindForStatus(status int, emailNotVerified bool) Kind {
	if emailNotVerified {
		return KindUnverifiedEmail
	}
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindServer
	}
}

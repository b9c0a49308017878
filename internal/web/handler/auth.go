package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
	"github.com/gameverse/gameverse-go/internal/web/templates"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	api    *client.Client
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(api *client.Client, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		api:    api,
		logger: logger,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, "", "")
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, "", "Formulaire invalide.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderLogin(w, r, email, "Email et mot de passe sont requis.")
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := sess.Login(r.Context(), email, password); err != nil {
		h.logger.Info("login rejected", "email", email, "error", err)
		h.renderLogin(w, r, email, userMessage(err, "Connexion impossible. Merci de réessayer."))
		return
	}

	middleware.SetTokenCookie(w, sess.Token())
	if user := sess.User(); user != nil {
		middleware.SetFlash(w, middleware.FlashSuccess, "Bon retour, "+user.Username+" !")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderRegister(w, r, "", "")
}

// Register handles the registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, "", "Formulaire invalide.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if email == "" || username == "" || password == "" {
		h.renderRegister(w, r, email, "Tous les champs sont requis.")
		return
	}

	sess := middleware.GetSession(r.Context())
	if err := sess.Register(r.Context(), email, username, password); err != nil {
		h.logger.Info("registration rejected", "email", email, "error", err)
		h.renderRegister(w, r, email, userMessage(err, "Inscription impossible. Merci de réessayer."))
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess,
		"Compte créé. Vérifiez votre boîte mail pour activer votre compte.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// VerifyEmail handles the link sent in the verification mail
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	data := templates.VerifyData{
		PageData: templates.PageData{
			Title: "Vérification",
			User:  middleware.GetUser(r.Context()),
		},
	}

	message, err := h.api.VerifyEmail(r.Context(), token)
	if err != nil {
		h.logger.Info("email verification failed", "error", err)
		data.Failed = true
		data.Message = userMessage(err, "Le lien de vérification est invalide ou expiré.")
	} else {
		data.Message = message
		if data.Message == "" {
			data.Message = "Votre adresse e-mail est vérifiée. Vous pouvez vous connecter."
		}
	}

	renderPage(w, r, "verify", data)
}

// Logout ends the session and clears the token cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess != nil {
		sess.Logout(r.Context())
	}
	middleware.ClearTokenCookie(w)
	middleware.SetFlash(w, middleware.FlashSuccess, "Vous êtes déconnecté.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, email, errMsg string) {
	data := templates.AuthData{
		PageData: templates.PageData{
			Title: "Connexion",
			Flash: middleware.GetFlash(r.Context()),
		},
		Email: email,
		Error: errMsg,
	}
	renderPage(w, r, "login", data)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, email, errMsg string) {
	data := templates.AuthData{
		PageData: templates.PageData{
			Title: "Inscription",
			Flash: middleware.GetFlash(r.Context()),
		},
		Email: email,
		Error: errMsg,
	}
	renderPage(w, r, "register", data)
}

// userMessage extracts the user-facing message from an API failure,
// falling back when the error carries none
func userMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

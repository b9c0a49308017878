package web_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/gameverse/gameverse-go/internal/cache/memory"
	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/dependencies/clock"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/ranking"
	"github.com/gameverse/gameverse-go/internal/web"
)

// fakeBackend is an in-memory rendition of the catalog API: one account,
// a small catalog, token-checked library mutations
type fakeBackend struct {
	mu          sync.Mutex
	games       []model.Game
	library     []int
	token       string
	searchCalls int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		games: []model.Game{
			{ID: 1, Title: "Hollow Knight", Platforms: []string{"Nintendo Switch"}, Genres: model.MultilingualList{FR: []string{"Aventure"}}, Added: 90},
			{ID: 2, Title: "Hollow Knight: Silksong", Platforms: []string{"PC (Microsoft Windows)"}, Genres: model.MultilingualList{FR: []string{"Aventure"}}, Added: 70},
			{ID: 3, Title: "Celeste", Platforms: []string{"Nintendo Switch"}, Genres: model.MultilingualList{FR: []string{"Plateforme"}}, Added: 80},
		},
	}
	f.token = f.issueToken(t)
	return f
}

func (f *fakeBackend) issueToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   7,
		"username":  "player-one",
		"email":     "player@example.com",
		"game_list": []int{},
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("web-test-secret"))
	require.NoError(t, err)
	return token
}

func (f *fakeBackend) authed(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token != "" && r.Header.Get("Authorization") == "Bearer "+f.token
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login_process", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["user_pass"] != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Email ou mot de passe incorrect."})
			return
		}
		f.mu.Lock()
		token := f.token
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"data": token})
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["user_email"] == "taken@example.com" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "Email déjà utilisé."})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Un email de vérification vous a été envoyé."})
	})

	mux.HandleFunc("GET /auth/verify-email/{token}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("token") != "good-token" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Lien de vérification invalide."})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Votre adresse e-mail est vérifiée."})
	})

	mux.HandleFunc("GET /auth/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"isConnected": f.authed(r)})
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		if !f.authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		library := append([]int(nil), f.library...)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(model.User{
			ID:       7,
			Username: "player-one",
			Email:    "player@example.com",
			GameList: library,
		})
	})

	mux.HandleFunc("POST /user/library/toggle", func(w http.ResponseWriter, r *http.Request) {
		if !f.authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.library = flipLibrary(f.library, body["gameId"])
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /games", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		f.mu.Lock()
		f.searchCalls++
		var matched []model.Game
		for _, game := range f.games {
			if q == "" || strings.Contains(strings.ToLower(game.Title), q) {
				matched = append(matched, game)
			}
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": matched, "total": len(matched)})
	})

	mux.HandleFunc("GET /games/filters", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Filters{
			Genres:    []string{"Aventure", "Plateforme"},
			Themes:    []string{"Fantaisie"},
			Platforms: []string{"Nintendo Switch", "PC (Microsoft Windows)"},
		})
	})

	mux.HandleFunc("GET /games/random-genres", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Aventure"})
	})

	mux.HandleFunc("GET /games/category", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		games := append([]model.Game(nil), f.games...)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(games)
	})

	mux.HandleFunc("GET /games/popular", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		games := append([]model.Game(nil), f.games...)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(games)
	})

	mux.HandleFunc("GET /games/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, game := range f.games {
			if game.ID == id {
				json.NewEncoder(w).Encode(game)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Jeu non trouvé"})
	})

	return mux
}

func (f *fakeBackend) searchCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func flipLibrary(list []int, id int) []int {
	for i, existing := range list {
		if existing == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, id)
}

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	backend *fakeBackend
	cookies *cookieJar
}

// newWebTestServer wires the router against a fake backend
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	backend := newFakeBackend(t)
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := client.New(server.URL)
	catalogService := catalog.New(api, memory.New(), logger)
	rankingService := ranking.NewService(api, catalogService, logger)

	router := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		API:         api,
		Catalog:     catalogService,
		Ranking:     rankingService,
		NewSession:  web.NewSessionFactory(server.URL, server.Client(), clock.New(), logger),
		PageSize:    50,
		MinQueryLen: 3,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		backend: backend,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)
	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// login authenticates the jar's browser as the fake account
func (ts *webTestServer) login() {
	ts.t.Helper()
	form := url.Values{"email": {"player@example.com"}, "password": {"hunter22"}}
	rr := ts.post("/login", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.True(ts.t, ts.cookies.hasToken(), "Expected token cookie to be set")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasToken returns true if the access token cookie is set
func (j *cookieJar) hasToken() bool {
	_, ok := j.cookies["gameverse_token"]
	return ok
}

// assertContainsText asserts that a selector's text contains the given string
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	found := false
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), text) {
			found = true
		}
	})
	require.True(t, found, "Expected %q to contain %q", selector, text)
}

// assertContainsElement asserts that at least one element matches the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	require.Positive(t, doc.Find(selector).Length(), "Expected element matching %q", selector)
}

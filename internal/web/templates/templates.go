package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/ranking"
	"github.com/gameverse/gameverse-go/internal/web/middleware"
)

//go:embed *.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
	"year": func(date string) string {
		if len(date) >= 4 {
			return date[:4]
		}
		return ""
	},
	"add": func(a, b int) int { return a + b },
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"home", "search", "game", "ranking",
		"login", "register", "verify", "error",
	} {
		pages[name] = template.Must(
			template.New("layout.tmpl").Funcs(funcs).ParseFS(files, "layout.tmpl", name+".tmpl"),
		)
	}
}

// Render writes a full page to w
func Render(w io.Writer, name string, data any) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.tmpl", data)
}

// PageData is the data every page shares
type PageData struct {
	Title string
	User  *model.User
	Flash *middleware.FlashMessage
}

// HomeData drives the home page
type HomeData struct {
	PageData
	Feed    []catalog.FeedColumn
	Popular []model.Game
}

// FacetGroup is one filter facet with its vocabulary and selection state
type FacetGroup struct {
	Facet     model.Facet
	Label     string
	Values    []string
	Selection *model.FilterSelection
}

// SearchData drives the search page
type SearchData struct {
	PageData
	Query   string
	Games   []model.Game
	Total   *int
	Page    int
	HasMore bool
	Facets  []FacetGroup
	// RawQuery re-encodes the current filters for pagination links
	RawQuery string
}

// GameData drives the game details page
type GameData struct {
	PageData
	Game       *model.Game
	InLibrary  bool
	Authorized bool
}

// RankingData drives the ranking page
type RankingData struct {
	PageData
	Hub     *ranking.Hub
	Ranking *ranking.Ranking
}

// AuthData drives the login and register pages
type AuthData struct {
	PageData
	Email string
	Error string
}

// VerifyData drives the email-verification result page
type VerifyData struct {
	PageData
	Message string
	Failed  bool
}

// ErrorData drives the error page
type ErrorData struct {
	PageData
	Message string
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gameverse/gameverse-go/internal/catalog"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/ranking"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Game:
		o.printGame(v)
	case model.User:
		o.printUser(v)
	case GameList:
		o.printGameList(v.Games)
	case SearchResult:
		o.printSearchResult(v)
	case []catalog.FeedColumn:
		o.printFeed(v)
	case RankingHub:
		o.printRankingHub(v)
	case ranking.Ranking:
		o.printRanking(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GameList wraps a plain list of games for printing
type GameList struct {
	Games []model.Game `json:"games"`
}

// SearchResult is a search page plus the total when the server sent one
type SearchResult struct {
	Games []model.Game `json:"games"`
	Total *int         `json:"total,omitempty"`
	Page  int          `json:"page"`
}

// RankingHub pairs the hub with the expand flag
type RankingHub struct {
	Hub     *ranking.Hub `json:"hub"`
	ShowAll bool         `json:"-"`
}

func (o *Output) printGame(g model.Game) {
	fmt.Printf("%s (#%d)\n", g.Title, g.ID)
	if year := releaseYear(g); year != "" {
		fmt.Printf("Released: %s\n", year)
	}
	if len(g.Developers) > 0 {
		fmt.Printf("Developers: %s\n", strings.Join(g.Developers, ", "))
	}
	if len(g.Publishers) > 0 {
		fmt.Printf("Publishers: %s\n", strings.Join(g.Publishers, ", "))
	}
	if len(g.Platforms) > 0 {
		fmt.Printf("Platforms: %s\n", strings.Join(g.Platforms, ", "))
	}
	if genres := g.Genres.Values(); len(genres) > 0 {
		fmt.Printf("Genres: %s\n", strings.Join(genres, ", "))
	}
	if themes := g.Themes.Values(); len(themes) > 0 {
		fmt.Printf("Themes: %s\n", strings.Join(themes, ", "))
	}
	if g.Added > 0 {
		fmt.Printf("In %d libraries\n", g.Added)
	}
	if desc := gameDescription(g); desc != "" {
		fmt.Printf("\n%s\n", desc)
	}
}

func (o *Output) printUser(u model.User) {
	fmt.Printf("User: %s (#%d)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Library: %d games\n", len(u.GameList))
}

func (o *Output) printGameList(games []model.Game) {
	if len(games) == 0 {
		fmt.Println("No games.")
		return
	}
	for _, g := range games {
		line := fmt.Sprintf("#%-6d %s", g.ID, g.Title)
		if year := releaseYear(g); year != "" {
			line += fmt.Sprintf(" (%s)", year)
		}
		fmt.Println(line)
	}
}

func (o *Output) printSearchResult(r SearchResult) {
	o.printGameList(r.Games)
	if r.Total != nil {
		fmt.Printf("\nPage %d, %d of %d games\n", r.Page, len(r.Games), *r.Total)
	}
}

func (o *Output) printFeed(feed []catalog.FeedColumn) {
	for i, column := range feed {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("== %s ==\n", column.Category)
		o.printGameList(column.Games)
	}
}

func (o *Output) printRankingHub(h RankingHub) {
	genres, themes := h.Hub.TopGenres, h.Hub.TopThemes
	if h.ShowAll {
		genres, themes = h.Hub.AllGenres, h.Hub.AllThemes
	}
	fmt.Printf("Genres: %s\n", strings.Join(genres, ", "))
	fmt.Printf("Themes: %s\n", strings.Join(themes, ", "))
	fmt.Println("Platform families:")
	for _, fam := range h.Hub.PlatformGroups {
		fmt.Printf("  %s (%d): %s\n", fam.Name, len(fam.Platforms), strings.Join(fam.Platforms, ", "))
	}
}

func (o *Output) printRanking(r ranking.Ranking) {
	fmt.Printf("%s\n\n", r.Label)
	for i, g := range r.Podium() {
		fmt.Printf("  #%d  %s\n", i+1, g.Title)
	}
	for i, g := range r.Rest() {
		fmt.Printf("  #%d  %s", i+1+ranking.PodiumSize, g.Title)
		if len(g.Developers) > 0 {
			fmt.Printf("  (%s)", g.Developers[0])
		}
		if year := releaseYear(g); year != "" {
			fmt.Printf("  %s", year)
		}
		fmt.Println()
	}
	if len(r.Games) == 0 {
		fmt.Println("No games found for this ranking.")
	}
}

// releaseYear extracts the year from a release date like 2017-03-03
func releaseYear(g model.Game) string {
	if len(g.ReleaseDate) >= 4 {
		return g.ReleaseDate[:4]
	}
	return ""
}

// gameDescription prefers the French description
func gameDescription(g model.Game) string {
	if g.Description.FR != "" {
		return g.Description.FR
	}
	return g.Description.EN
}

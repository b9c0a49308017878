package ranking

import (
	"sort"

	"github.com/gameverse/gameverse-go/internal/model"
)

// DefaultTopLimit is how many facet values the hub shows before the
// expand control
const DefaultTopLimit = 12

// CountOccurrences tallies how many games carry each value produced by
// pick
func CountOccurrences(games []model.Game, pick func(model.Game) []string) map[string]int {
	counts := make(map[string]int)
	for _, game := range games {
		for _, value := range pick(game) {
			counts[value]++
		}
	}
	return counts
}

// SortByPopularity returns the counted values in descending frequency.
// Ties break alphabetically so the order is stable.
func SortByPopularity(counts map[string]int) []string {
	values := make([]string, 0, len(counts))
	for value := range counts {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	return values
}

// TopFacets returns the limit most frequent values of a facet across the
// games, plus the full sorted vocabulary for expand/collapse
func TopFacets(games []model.Game, pick func(model.Game) []string, limit int) (top []string, all []string) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	all = SortByPopularity(CountOccurrences(games, pick))
	if len(all) > limit {
		top = all[:limit]
	} else {
		top = all
	}
	return top, all
}

// Genres picks a game's French-first genre names, for use with the
// counting helpers
func Genres(g model.Game) []string { return g.Genres.Values() }

// Themes picks a game's French-first theme names
func Themes(g model.Game) []string { return g.Themes.Values() }

package model

import "sort"

// Facet identifies a filterable category
type Facet string

// The five filterable categories exposed by the backend
const (
	FacetGenres     Facet = "genres"
	FacetPlatforms  Facet = "platforms"
	FacetThemes     Facet = "themes"
	FacetDevelopers Facet = "developers"
	FacetPublishers Facet = "publishers"
)

// AllFacets lists the facets in display order
var AllFacets = []Facet{FacetGenres, FacetPlatforms, FacetThemes, FacetDevelopers, FacetPublishers}

// FilterMode is the combination rule applied to a facet's selected values
type FilterMode string

const (
	// ModeAny matches games carrying any selected value (OR)
	ModeAny FilterMode = "OR"
	// ModeAll matches games carrying every selected value (AND)
	ModeAll FilterMode = "AND"
)

// Filters holds the full filter vocabulary fetched from the backend
type Filters struct {
	Genres     []string `json:"genres"`
	Platforms  []string `json:"platforms"`
	Themes     []string `json:"themes"`
	Developers []string `json:"developers"`
	Publishers []string `json:"publishers"`
}

// Values returns the vocabulary for a facet
func (f *Filters) Values(facet Facet) []string {
	switch facet {
	case FacetGenres:
		return f.Genres
	case FacetPlatforms:
		return f.Platforms
	case FacetThemes:
		return f.Themes
	case FacetDevelopers:
		return f.Developers
	case FacetPublishers:
		return f.Publishers
	}
	return nil
}

// FilterSelection tracks selected values and the combination mode per facet.
// Mode and selection set are independent: changing one never resets the other.
type FilterSelection struct {
	selected map[Facet]map[string]bool
	modes    map[Facet]FilterMode
}

// NewFilterSelection creates an empty selection with every facet in OR mode
func NewFilterSelection() *FilterSelection {
	s := &FilterSelection{
		selected: make(map[Facet]map[string]bool),
		modes:    make(map[Facet]FilterMode),
	}
	for _, f := range AllFacets {
		s.selected[f] = make(map[string]bool)
		s.modes[f] = ModeAny
	}
	return s
}

// Toggle flips membership of a value in a facet's selection set
func (s *FilterSelection) Toggle(facet Facet, value string) {
	if s.selected[facet][value] {
		delete(s.selected[facet], value)
	} else {
		s.selected[facet][value] = true
	}
}

// IsSelected reports whether a value is selected for a facet
func (s *FilterSelection) IsSelected(facet Facet, value string) bool {
	return s.selected[facet][value]
}

// SetMode sets the combination mode for a facet
func (s *FilterSelection) SetMode(facet Facet, mode FilterMode) {
	s.modes[facet] = mode
}

// Mode returns the combination mode for a facet
func (s *FilterSelection) Mode(facet Facet) FilterMode {
	return s.modes[facet]
}

// Values returns the selected values for a facet in stable (sorted) order
func (s *FilterSelection) Values(facet Facet) []string {
	vals := make([]string, 0, len(s.selected[facet]))
	for v := range s.selected[facet] {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals
}

// Empty reports whether no value is selected on any facet
func (s *FilterSelection) Empty() bool {
	for _, f := range AllFacets {
		if len(s.selected[f]) > 0 {
			return false
		}
	}
	return true
}

// Clear removes every selection, leaving modes untouched
func (s *FilterSelection) Clear() {
	for _, f := range AllFacets {
		s.selected[f] = make(map[string]bool)
	}
}

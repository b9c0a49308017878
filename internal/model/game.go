package model

// Image is a pair of URLs for the same picture at two sizes
type Image struct {
	Thumb    string `json:"thumb"`
	Original string `json:"original"`
}

// MultilingualText holds a single string per supported language
type MultilingualText struct {
	EN string `json:"en,omitempty"`
	FR string `json:"fr,omitempty"`
}

// MultilingualList holds an ordered list of strings per supported language
type MultilingualList struct {
	EN []string `json:"en,omitempty"`
	FR []string `json:"fr,omitempty"`
}

// Values returns the list for the preferred language, falling back to the other.
// The catalog is indexed in French first, so FR wins when both exist.
func (m MultilingualList) Values() []string {
	if len(m.FR) > 0 {
		return m.FR
	}
	return m.EN
}

// Game is a catalog entry. It is reference data owned by the backend;
// this module never mutates it.
type Game struct {
	ID          int              `json:"game_id"`
	Title       string           `json:"title"`
	Description MultilingualText `json:"description"`
	Platforms   []string         `json:"platforms"`
	Genres      MultilingualList `json:"genres"`
	Themes      MultilingualList `json:"themes,omitempty"`
	GameModes   MultilingualList `json:"game_modes,omitempty"`
	Developers  []string         `json:"developers"`
	Publishers  []string         `json:"publishers"`
	Cover       Image            `json:"cover"`
	Artworks    []Image          `json:"artworks,omitempty"`
	Videos      []string         `json:"videos,omitempty"`
	ReleaseDate string           `json:"release_date"`

	// Added counts how many users put the game in their library.
	// It is the popularity signal used for ranking views.
	Added int `json:"added,omitempty"`
}

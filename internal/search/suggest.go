package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gameverse/gameverse-go/internal/cache"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
)

// SuggestConfig holds the tunable knobs of the autocomplete suggester
type SuggestConfig struct {
	Debounce    time.Duration
	MinQueryLen int
	Limit       int
}

// DefaultSuggestConfig returns the production defaults
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		Debounce:    450 * time.Millisecond,
		MinQueryLen: 2,
		Limit:       8,
	}
}

// Suggester drives debounced autocomplete. Results for each exact query
// are cached, so retyping a prefix never refetches it. A keyboard cursor
// over the suggestions is kept in [-1, len-1], where -1 means no
// selection.
type Suggester struct {
	api    *client.Client
	store  cache.Cache
	cfg    SuggestConfig
	logger *slog.Logger

	// onSuggestions receives the suggestion list after every change,
	// invoked without the lock held
	onSuggestions func([]model.Game)

	mu          sync.Mutex
	query       string
	suggestions []model.Game
	cursor      int
	gen         uint64
	cancel      context.CancelFunc
	timer       *time.Timer
}

// NewSuggester creates a suggester. store may be nil to disable caching;
// onSuggestions may be nil when the caller polls Suggestions instead.
func NewSuggester(api *client.Client, store cache.Cache, cfg SuggestConfig, logger *slog.Logger, onSuggestions func([]model.Game)) *Suggester {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultSuggestConfig().Debounce
	}
	if cfg.MinQueryLen == 0 {
		cfg.MinQueryLen = DefaultSuggestConfig().MinQueryLen
	}
	if cfg.Limit == 0 {
		cfg.Limit = DefaultSuggestConfig().Limit
	}
	return &Suggester{
		api:           api,
		store:         store,
		cfg:           cfg,
		logger:        logger,
		onSuggestions: onSuggestions,
		cursor:        -1,
	}
}

// Suggestions returns the current suggestion list
func (s *Suggester) Suggestions() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Game, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// SetQuery updates the query text. Short queries clear the suggestions
// immediately; cached queries resolve without a network call; everything
// else fetches after the debounce period.
func (s *Suggester) SetQuery(q string) {
	s.mu.Lock()
	if s.query == q {
		s.mu.Unlock()
		return
	}
	s.query = q
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cursor = -1

	if len([]rune(q)) < s.cfg.MinQueryLen {
		s.suggestions = nil
		s.finishLocked()
		return
	}

	if s.store != nil {
		if cached, err := s.store.GetSuggestions(context.Background(), q); err == nil {
			s.suggestions = cached
			s.finishLocked()
			return
		}
	}

	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.fetch(ctx, gen, q)
	})
	s.mu.Unlock()
}

// Reset clears the suggestions and cursor, e.g. when the dropdown is
// dismissed or a suggestion is committed
func (s *Suggester) Reset() {
	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.query = ""
	s.suggestions = nil
	s.cursor = -1
	s.finishLocked()
}

// MoveDown advances the cursor, stopping at the last suggestion
func (s *Suggester) MoveDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.suggestions)-1 {
		s.cursor++
	}
}

// MoveUp retreats the cursor; from the first suggestion it returns to -1
func (s *Suggester) MoveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= 0 {
		s.cursor--
	}
}

// Selected returns the suggestion under the cursor, or false when the
// cursor is at -1
func (s *Suggester) Selected() (model.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 || s.cursor >= len(s.suggestions) {
		return model.Game{}, false
	}
	return s.suggestions[s.cursor], true
}

// Cursor returns the current cursor position
func (s *Suggester) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Suggester) fetch(ctx context.Context, gen uint64, q string) {
	result, err := s.api.SearchGames(ctx, client.SearchParams{Query: q, Limit: s.cfg.Limit})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("suggestion request failed", slog.String("error", err.Error()))
		}
		return
	}

	if s.store != nil {
		if err := s.store.SetSuggestions(context.Background(), q, result.Games); err != nil {
			s.logger.Warn("failed to cache suggestions", slog.String("error", err.Error()))
		}
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.suggestions = result.Games
	s.finishLocked()
}

// finishLocked snapshots and emits; releases the lock
func (s *Suggester) finishLocked() {
	snap := make([]model.Game, len(s.suggestions))
	copy(snap, s.suggestions)
	s.mu.Unlock()
	if s.onSuggestions != nil {
		s.onSuggestions(snap)
	}
}

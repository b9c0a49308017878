package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
)

// Config holds the tunable knobs of the search engine
type Config struct {
	// Debounce is the quiet period after an edit before the search fires
	Debounce time.Duration
	// MinQueryLen is the shortest non-empty query sent to the server;
	// shorter ones short-circuit to an empty result set
	MinQueryLen int
	// PageSize is the fixed page size for search requests
	PageSize int
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		Debounce:    500 * time.Millisecond,
		MinQueryLen: 3,
		PageSize:    50,
	}
}

// Results is a snapshot of the visible result state
type Results struct {
	Games []model.Game
	// Total is the server-reported match count, nil when unknown
	Total *int
	Page  int
}

// HasMore reports whether another page may exist: bounded by total when
// known, otherwise inferred from the last page being full
func (r Results) HasMore(pageSize int) bool {
	if r.Total != nil {
		return len(r.Games) < *r.Total
	}
	return len(r.Games) > 0 && len(r.Games) == r.Page*pageSize
}

// Engine drives the search lifecycle: query text, per-facet filter
// selections, pagination, and a race-free debounced fetch cycle. Every
// state change cancels its predecessor's in-flight request; a completion
// is applied only while its generation is still current, so a stale
// response can never overwrite newer state.
type Engine struct {
	api    *client.Client
	cfg    Config
	logger *slog.Logger

	// onResults receives a snapshot after every applied change. It is
	// invoked without the engine lock held, from the mutating goroutine
	// or from a fetch completion.
	onResults func(Results)

	mu        sync.Mutex
	query     string
	selection *model.FilterSelection
	page      int
	games     []model.Game
	total     *int
	gen       uint64
	cancel    context.CancelFunc
	timer     *time.Timer
}

// New creates a search engine. onResults may be nil when the caller polls
// Results instead.
func New(api *client.Client, cfg Config, logger *slog.Logger, onResults func(Results)) *Engine {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultConfig().Debounce
	}
	if cfg.MinQueryLen == 0 {
		cfg.MinQueryLen = DefaultConfig().MinQueryLen
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return &Engine{
		api:       api,
		cfg:       cfg,
		logger:    logger,
		onResults: onResults,
		selection: model.NewFilterSelection(),
		page:      1,
	}
}

// Query returns the current query text
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// Selection exposes the current filter selection for rendering. Mutations
// must go through ToggleFilter/SetFilterMode/ClearFilters so a fetch is
// scheduled.
func (e *Engine) Selection() *model.FilterSelection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// Results returns a snapshot of the current result state
func (e *Engine) Results() Results {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// SetQuery updates the query text and restarts the search cycle
func (e *Engine) SetQuery(q string) {
	e.mu.Lock()
	if e.query == q {
		e.mu.Unlock()
		return
	}
	e.query = q
	e.restartLocked()
}

// ToggleFilter flips a facet value selection and restarts the search cycle
func (e *Engine) ToggleFilter(facet model.Facet, value string) {
	e.mu.Lock()
	e.selection.Toggle(facet, value)
	e.restartLocked()
}

// SetFilterMode changes a facet's AND/OR mode and restarts the search cycle
func (e *Engine) SetFilterMode(facet model.Facet, mode model.FilterMode) {
	e.mu.Lock()
	e.selection.SetMode(facet, mode)
	e.restartLocked()
}

// ClearFilters resets query and selections and restarts the search cycle
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	e.selection.Clear()
	e.query = ""
	e.restartLocked()
}

// Refresh forces a fresh first-page fetch with the current parameters
func (e *Engine) Refresh() {
	e.mu.Lock()
	e.restartLocked()
}

// LoadMore fetches the next page and appends it to the current list.
// It supersedes any in-flight request like every other transition.
func (e *Engine) LoadMore() {
	e.mu.Lock()
	e.supersedeLocked()
	gen := e.gen
	next := e.page + 1
	ctx := e.fetchContextLocked()
	params := e.paramsLocked(next)
	e.mu.Unlock()

	go e.fetch(ctx, gen, next, true, params)
}

// restartLocked resets pagination, supersedes the in-flight request, and
// schedules the debounced fetch. Called with the lock held; releases it.
func (e *Engine) restartLocked() {
	e.page = 1
	e.supersedeLocked()

	// Too-short queries never hit the server
	if n := len([]rune(e.query)); n > 0 && n < e.cfg.MinQueryLen {
		e.games = nil
		e.total = nil
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.emit(snap)
		return
	}

	gen := e.gen
	ctx := e.fetchContextLocked()
	params := e.paramsLocked(1)
	e.timer = time.AfterFunc(e.cfg.Debounce, func() {
		e.fetch(ctx, gen, 1, false, params)
	})
	e.mu.Unlock()
}

// supersedeLocked bumps the generation, cancels the in-flight request,
// and stops any pending debounce timer
func (e *Engine) supersedeLocked() {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) fetchContextLocked() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	return ctx
}

func (e *Engine) paramsLocked(page int) client.SearchParams {
	return client.SearchParams{
		Query:     e.query,
		Selection: e.selection,
		Page:      page,
		Limit:     e.cfg.PageSize,
	}
}

// fetch performs the network call and applies the result if and only if
// its generation is still current
func (e *Engine) fetch(ctx context.Context, gen uint64, page int, appendPage bool, params client.SearchParams) {
	result, err := e.api.SearchGames(ctx, params)
	if err != nil {
		// A superseded request's failure is expected noise
		if !errors.Is(err, context.Canceled) {
			e.logger.Warn("search request failed", slog.String("error", err.Error()))
		}
		return
	}

	e.mu.Lock()
	if gen != e.gen {
		// A newer intent superseded this request while it was in flight
		e.mu.Unlock()
		return
	}
	if appendPage {
		e.games = append(e.games, result.Games...)
	} else {
		e.games = result.Games
	}
	e.total = result.Total
	e.page = page
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.emit(snap)
}

func (e *Engine) snapshotLocked() Results {
	games := make([]model.Game, len(e.games))
	copy(games, e.games)
	var total *int
	if e.total != nil {
		t := *e.total
		total = &t
	}
	return Results{Games: games, Total: total, Page: e.page}
}

func (e *Engine) emit(snap Results) {
	if e.onResults != nil {
		e.onResults(snap)
	}
}

package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/testutil"
)

// fakeCatalog is a scriptable /games backend that counts calls and can
// delay responses per query
type fakeCatalog struct {
	mu     sync.Mutex
	calls  int
	delays map[string]time.Duration
	// pages maps page number to the games returned; when nil, games are
	// generated from the query
	pages map[int][]model.Game
	total *int
}

func (f *fakeCatalog) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		f.mu.Lock()
		f.calls++
		delay := f.delays[q]
		games, scripted := f.pages[page], f.pages != nil
		total := f.total
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if !scripted {
			games = []model.Game{{ID: len(q), Title: q}}
		}
		if total != nil {
			json.NewEncoder(w).Encode(map[string]any{"data": games, "total": *total})
			return
		}
		json.NewEncoder(w).Encode(games)
	})
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// newTestEngine wires an engine with a short debounce and a channel that
// receives every emitted snapshot
func newTestEngine(t *testing.T, backend *fakeCatalog, cfg Config) (*Engine, chan Results) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	results := make(chan Results, 16)
	api := client.New(server.URL)
	engine := New(api, cfg, testutil.NopLogger(), func(r Results) {
		results <- r
	})
	return engine, results
}

func waitForResults(t *testing.T, ch chan Results) Results {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for search results")
		return Results{}
	}
}

func TestShortQuerySkipsNetwork(t *testing.T) {
	backend := &fakeCatalog{}
	engine, results := newTestEngine(t, backend, Config{Debounce: 10 * time.Millisecond})

	engine.SetQuery("ab")

	r := waitForResults(t, results)
	assert.Empty(t, r.Games)

	// Give a stray debounce timer ample time to fire
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, backend.callCount())
}

func TestEmptyQueryFetchesUnfiltered(t *testing.T) {
	backend := &fakeCatalog{}
	engine, results := newTestEngine(t, backend, Config{Debounce: 5 * time.Millisecond})

	engine.Refresh()

	r := waitForResults(t, results)
	require.Len(t, r.Games, 1)
	assert.Equal(t, 1, backend.callCount())
}

func TestDebounceCoalescesEdits(t *testing.T) {
	backend := &fakeCatalog{}
	engine, results := newTestEngine(t, backend, Config{Debounce: 60 * time.Millisecond})

	// Three rapid edits within the debounce window
	engine.SetQuery("zel")
	engine.SetQuery("zeld")
	engine.SetQuery("zelda")

	r := waitForResults(t, results)
	require.Len(t, r.Games, 1)
	assert.Equal(t, "zelda", r.Games[0].Title)
	assert.Equal(t, 1, backend.callCount())
}

func TestStaleResponseNeverOverwritesNewerState(t *testing.T) {
	backend := &fakeCatalog{delays: map[string]time.Duration{
		"slowquery": 400 * time.Millisecond,
	}}
	engine, results := newTestEngine(t, backend, Config{Debounce: 5 * time.Millisecond})

	engine.SetQuery("slowquery")
	// Let the slow request get in flight before superseding it
	time.Sleep(50 * time.Millisecond)
	engine.SetQuery("fastquery")

	r := waitForResults(t, results)
	require.Len(t, r.Games, 1)
	assert.Equal(t, "fastquery", r.Games[0].Title)

	// The slow response must never surface, even after its delay elapses
	select {
	case late := <-results:
		t.Fatalf("stale response was applied: %+v", late)
	case <-time.After(500 * time.Millisecond):
	}
	assert.Equal(t, "fastquery", engine.Results().Games[0].Title)
}

func TestFilterToggleResetsPage(t *testing.T) {
	page1 := make([]model.Game, 50)
	for i := range page1 {
		page1[i] = model.Game{ID: i + 1}
	}
	page2 := make([]model.Game, 20)
	for i := range page2 {
		page2[i] = model.Game{ID: i + 51}
	}
	backend := &fakeCatalog{pages: map[int][]model.Game{1: page1, 2: page2}}
	engine, results := newTestEngine(t, backend, Config{Debounce: 5 * time.Millisecond, PageSize: 50})

	engine.Refresh()
	waitForResults(t, results)
	engine.LoadMore()
	r := waitForResults(t, results)
	require.Equal(t, 2, r.Page)

	engine.ToggleFilter(model.FacetGenres, "Aventure")
	r = waitForResults(t, results)
	assert.Equal(t, 1, r.Page)
	assert.Len(t, r.Games, 50)
}

func TestLoadMoreAppends(t *testing.T) {
	page1 := make([]model.Game, 50)
	for i := range page1 {
		page1[i] = model.Game{ID: i + 1}
	}
	page2 := make([]model.Game, 20)
	for i := range page2 {
		page2[i] = model.Game{ID: i + 51}
	}
	backend := &fakeCatalog{pages: map[int][]model.Game{1: page1, 2: page2}}
	engine, results := newTestEngine(t, backend, Config{Debounce: 5 * time.Millisecond, PageSize: 50})

	engine.Refresh()
	first := waitForResults(t, results)
	require.Len(t, first.Games, 50)
	assert.True(t, first.HasMore(50))

	engine.LoadMore()
	second := waitForResults(t, results)
	require.Len(t, second.Games, 70)
	assert.Equal(t, 1, second.Games[0].ID)
	assert.Equal(t, 51, second.Games[50].ID)
	assert.Equal(t, 70, second.Games[69].ID)
	// A short final page means no more pages
	assert.False(t, second.HasMore(50))
}

func TestHasMoreUsesTotalWhenKnown(t *testing.T) {
	total := 120
	games := make([]model.Game, 50)
	r := Results{Games: games, Total: &total, Page: 1}
	assert.True(t, r.HasMore(50))

	total = 50
	assert.False(t, r.HasMore(50))
}

func TestSelectionParamsReachBackend(t *testing.T) {
	var got map[string]string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = map[string]string{
			"genres":     r.URL.Query().Get("genres"),
			"genresMode": r.URL.Query().Get("genresMode"),
		}
		mu.Unlock()
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	results := make(chan Results, 4)
	engine := New(client.New(server.URL), Config{Debounce: 5 * time.Millisecond}, testutil.NopLogger(), func(r Results) {
		results <- r
	})
	// The mode change supersedes the toggle's pending fetch, so only one
	// request reaches the backend
	engine.ToggleFilter(model.FacetGenres, "RPG")
	engine.SetFilterMode(model.FacetGenres, model.ModeAll)
	waitForResults(t, results)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "RPG", got["genres"])
	assert.Equal(t, "AND", got["genresMode"])
}

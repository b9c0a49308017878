package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameverse/gameverse-go/internal/cache/memory"
	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/testutil"
)

// fakeSuggestBackend serves /games suggestions and counts calls per query
type fakeSuggestBackend struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeSuggestBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		f.mu.Lock()
		if f.calls == nil {
			f.calls = map[string]int{}
		}
		f.calls[q]++
		f.mu.Unlock()

		json.NewEncoder(w).Encode([]model.Game{
			{ID: 1, Title: q + " One"},
			{ID: 2, Title: q + " Two"},
			{ID: 3, Title: q + " Three"},
		})
	})
}

func (f *fakeSuggestBackend) callsFor(q string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[q]
}

func newTestSuggester(t *testing.T, backend *fakeSuggestBackend) (*Suggester, chan []model.Game) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	out := make(chan []model.Game, 16)
	s := NewSuggester(client.New(server.URL), memory.New(), SuggestConfig{Debounce: 10 * time.Millisecond}, testutil.NopLogger(), func(games []model.Game) {
		out <- games
	})
	return s, out
}

func waitForSuggestions(t *testing.T, ch chan []model.Game) []model.Game {
	t.Helper()
	select {
	case games := <-ch:
		return games
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for suggestions")
		return nil
	}
}

func TestSuggestShortQueryClearsWithoutNetwork(t *testing.T) {
	backend := &fakeSuggestBackend{}
	s, out := newTestSuggester(t, backend)

	s.SetQuery("z")
	assert.Empty(t, waitForSuggestions(t, out))

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, backend.callsFor("z"))
}

func TestSuggestFetchesAndCaches(t *testing.T) {
	backend := &fakeSuggestBackend{}
	s, out := newTestSuggester(t, backend)

	s.SetQuery("mario")
	first := waitForSuggestions(t, out)
	require.Len(t, first, 3)
	assert.Equal(t, "mario One", first[0].Title)
	assert.Equal(t, 1, backend.callsFor("mario"))

	// Retyping the same query resolves from the cache with no new call
	s.SetQuery("mar")
	waitForSuggestions(t, out)
	s.SetQuery("mario")
	second := waitForSuggestions(t, out)
	assert.Len(t, second, 3)
	assert.Equal(t, 1, backend.callsFor("mario"))
}

func TestSuggestCursorBounds(t *testing.T) {
	backend := &fakeSuggestBackend{}
	s, out := newTestSuggester(t, backend)

	s.SetQuery("sonic")
	waitForSuggestions(t, out)

	// Starts with nothing selected
	_, ok := s.Selected()
	assert.False(t, ok)

	// Down stops at the last suggestion
	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	assert.Equal(t, 2, s.Cursor())
	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "sonic Three", selected.Title)

	// Up past the first suggestion returns to no selection
	s.MoveUp()
	s.MoveUp()
	s.MoveUp()
	assert.Equal(t, -1, s.Cursor())
	_, ok = s.Selected()
	assert.False(t, ok)
	s.MoveUp()
	assert.Equal(t, -1, s.Cursor())
}

func TestSuggestNewQueryResetsCursor(t *testing.T) {
	backend := &fakeSuggestBackend{}
	s, out := newTestSuggester(t, backend)

	s.SetQuery("halo")
	waitForSuggestions(t, out)
	s.MoveDown()
	require.Equal(t, 0, s.Cursor())

	s.SetQuery("halo 2")
	waitForSuggestions(t, out)
	assert.Equal(t, -1, s.Cursor())
}

func TestSuggestReset(t *testing.T) {
	backend := &fakeSuggestBackend{}
	s, out := newTestSuggester(t, backend)

	s.SetQuery("tetris")
	waitForSuggestions(t, out)
	s.MoveDown()

	s.Reset()
	assert.Empty(t, waitForSuggestions(t, out))
	assert.Equal(t, -1, s.Cursor())
	assert.Empty(t, s.Suggestions())
}

func TestSuggestDebounceCoalesces(t *testing.T) {
	backend := &fakeSuggestBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	out := make(chan []model.Game, 16)
	s := NewSuggester(client.New(server.URL), memory.New(), SuggestConfig{Debounce: 60 * time.Millisecond}, testutil.NopLogger(), func(games []model.Game) {
		out <- games
	})

	s.SetQuery("me")
	s.SetQuery("met")
	s.SetQuery("metroid")

	games := waitForSuggestions(t, out)
	require.Len(t, games, 3)
	assert.Equal(t, "metroid One", games[0].Title)
	assert.Zero(t, backend.callsFor("me"))
	assert.Zero(t, backend.callsFor("met"))
	assert.Equal(t, 1, backend.callsFor("metroid"))
}

package factory

import (
	"io"
	"log/slog"
	"time"

	memorycache "github.com/gameverse/gameverse-go/internal/cache/memory"
	"github.com/gameverse/gameverse-go/internal/config"
	"github.com/gameverse/gameverse-go/internal/dependencies/mocks"
	"github.com/gameverse/gameverse-go/internal/session"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	Credentials *session.MemoryStore
}

// NewTestApp creates an App configured for testing: in-memory cache and
// credentials, a mock clock, and near-zero debounce so tests stay fast
func NewTestApp(baseURL string) *TestApp {
	cfg := Config{
		App: &config.Config{
			APIBaseURL:      baseURL,
			CacheBackend:    config.CacheMemory,
			SearchDebounce:  time.Millisecond,
			SuggestDebounce: time.Millisecond,
		},
	}
	creds := session.NewMemoryStore()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(cfg, memorycache.New(), creds, mockClock, logger)

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		Credentials: creds,
	}
}

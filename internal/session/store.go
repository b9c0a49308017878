package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/dependencies/clock"
	"github.com/gameverse/gameverse-go/internal/model"
)

// State is the authentication state of the store
type State int

// The store starts Unknown and settles into exactly one of the other two
const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store is the session-lifetime auth state. It owns the access credential
// and the current user, and mediates every auth-dependent operation.
// Constructed once at application start; never torn down.
type Store struct {
	api    *client.Client
	creds  CredentialStore
	clock  clock.Clock
	logger *slog.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *model.User
}

// New creates a Store in the Unknown state
func New(api *client.Client, creds CredentialStore, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		api:    api,
		creds:  creds,
		clock:  clk,
		logger: logger,
		state:  StateUnknown,
	}
}

// Token returns the current access credential, empty when anonymous.
// Safe to use as a client.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current auth state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a user is logged in
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns a copy of the current user, nil when anonymous
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Resume restores the session from a stored credential. Any failure along
// the way clears both credential and user rather than leaving stale data.
func (s *Store) Resume(ctx context.Context) error {
	token, err := s.creds.Load()
	if err != nil {
		if !errors.Is(err, model.ErrNoCredential) {
			s.logger.Warn("failed to load stored credential", slog.String("error", err.Error()))
		}
		s.becomeAnonymous()
		return nil
	}

	// A token that is already expired cannot be worth a round trip
	if claims, err := decodeClaims(token); err == nil {
		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(s.clock.Now()) {
			s.logger.Info("stored credential expired, clearing")
			s.clearCredential()
			s.becomeAnonymous()
			return nil
		}
	}

	s.adopt(token)

	status, err := s.api.Status(ctx)
	if err != nil || !status.IsConnected {
		if err != nil {
			s.logger.Warn("session verification failed", slog.String("error", err.Error()))
		}
		s.clearCredential()
		s.becomeAnonymous()
		return nil
	}

	// The server may hand back a rotated credential; persist and re-adopt it
	if status.NewAccessToken != "" {
		token = status.NewAccessToken
		if err := s.creds.Save(token); err != nil {
			s.logger.Warn("failed to persist rotated credential", slog.String("error", err.Error()))
		}
		s.adopt(token)
	}

	if err := s.seedFromToken(token); err != nil {
		s.clearCredential()
		s.becomeAnonymous()
		return nil
	}

	s.refreshProfile(ctx)
	return nil
}

// Login authenticates with the backend. An unverified email surfaces as a
// client.KindUnverifiedEmail error, distinct from invalid credentials.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.creds.Save(token); err != nil {
		s.logger.Warn("failed to persist credential", slog.String("error", err.Error()))
	}
	s.adopt(token)

	if err := s.seedFromToken(token); err != nil {
		s.clearCredential()
		s.becomeAnonymous()
		return err
	}

	s.refreshProfile(ctx)
	return nil
}

// Register creates an account without authenticating it. Failures map to
// a distinct user-facing message per condition.
func (s *Store) Register(ctx context.Context, email, username, password string) error {
	if err := s.api.Register(ctx, email, username, password); err != nil {
		return mapRegisterError(err)
	}
	return nil
}

// Logout notifies the server (best effort) and unconditionally clears
// local credential and user state.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("logout request failed", slog.String("error", err.Error()))
	}
	s.clearCredential()
	s.becomeAnonymous()
}

// ToggleFavorite flips a game's membership in the user's library. The flip
// is applied locally before the server call and rolled back to the exact
// pre-toggle snapshot when the server rejects it.
func (s *Store) ToggleFavorite(ctx context.Context, gameID int) error {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.user == nil {
		s.mu.Unlock()
		return model.ErrNotAuthenticated
	}

	snapshot := s.user.Clone()
	s.user.GameList = flipMembership(s.user.GameList, gameID)
	s.mu.Unlock()

	if err := s.api.ToggleLibrary(ctx, gameID); err != nil {
		s.mu.Lock()
		s.user = snapshot
		s.mu.Unlock()
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("favorite toggle rejected, rolled back",
				slog.Int("game_id", gameID),
				slog.String("error", err.Error()),
			)
		}
		return err
	}
	return nil
}

// RefreshProfile re-fetches the authoritative profile from the server
func (s *Store) RefreshProfile(ctx context.Context) error {
	user, err := s.api.Me(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// seedFromToken installs a provisional user decoded from the token claims
func (s *Store) seedFromToken(token string) error {
	claims, err := decodeClaims(token)
	if err != nil {
		s.logger.Warn("invalid access token", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	// Keep the authoritative game list over the claim-derived one if the
	// profile was already fetched this session
	seeded := claims.user()
	if s.user != nil && s.user.GameList != nil {
		seeded.GameList = s.user.GameList
	}
	s.user = seeded
	s.state = StateAuthenticated
	s.mu.Unlock()
	return nil
}

// refreshProfile overwrites claim-derived fields with the server profile.
// Failure leaves the provisional user in place and is logged, not fatal.
func (s *Store) refreshProfile(ctx context.Context) {
	if err := s.RefreshProfile(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to refresh profile", slog.String("error", err.Error()))
	}
}

func (s *Store) adopt(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Store) clearCredential() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear stored credential", slog.String("error", err.Error()))
	}
}

func (s *Store) becomeAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func flipMembership(list []int, gameID int) []int {
	for i, id := range list {
		if id == gameID {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, gameID)
}

// Register failure copy, one message per condition
const (
	msgRegisterRateLimited = "Trop de requêtes. Réessayez dans quelques minutes."
	msgRegisterConflict    = "Cet email ou ce pseudo est déjà utilisé."
	msgRegisterValidation  = "Champs manquants ou invalides."
	msgRegisterGeneric     = "Inscription impossible. Merci de réessayer."
)

// mapRegisterError replaces the server message with registration-specific
// copy for the statuses users actually hit on the form
func mapRegisterError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	mapped := *apiErr
	switch apiErr.Kind {
	case client.KindRateLimit:
		mapped.Message = msgRegisterRateLimited
	case client.KindConflict:
		mapped.Message = msgRegisterConflict
	case client.KindValidation:
		mapped.Message = msgRegisterValidation
	default:
		if mapped.Message == "" {
			mapped.Message = msgRegisterGeneric
		}
	}
	return &mapped
}

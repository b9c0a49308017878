package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gameverse/gameverse-go/internal/model"
)

// CredentialStore persists the opaque access token between runs
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a file under the user's home directory
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path. An empty path uses
// the default location (~/.gameverse/token).
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = defaultTokenFile()
	}
	return &FileStore{path: path}
}

// Load reads the stored token. Returns model.ErrNoCredential when none exists.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.ErrNoCredential
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", model.ErrNoCredential
	}
	return token, nil
}

// Save writes the token with owner-only permissions
func (s *FileStore) Save(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear removes the stored token
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gameverse/token"
	}
	return filepath.Join(home, ".gameverse", "token")
}

// MemoryStore is an in-memory CredentialStore for tests and the web layer
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held token or model.ErrNoCredential
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", model.ErrNoCredential
	}
	return s.token, nil
}

// Save stores the token
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear drops the token
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

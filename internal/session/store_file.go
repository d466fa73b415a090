package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps the session in a single JSON state file. This is the
// default backend for a single-operator install.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// stateFile mirrors the three storage keys on disk. The user snapshot
// stays raw so a corrupt value is detected at load time rather than
// silently zeroed.
type stateFile struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session state file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	state := stateFile{
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         userJSON,
	}
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir session state dir: %w", err)
	}
	// Tokens on disk: owner-only.
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write session state file: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (Session, bool) {
	s.mu.Lock()
	b, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil || len(b) == 0 {
		return Session{}, false
	}

	var state stateFile
	if err := json.Unmarshal(b, &state); err != nil {
		// Corrupt state file: wipe it so the next load starts clean.
		_ = s.Clear()
		return Session{}, false
	}
	if state.Token == "" {
		return Session{}, false
	}

	var user User
	if len(state.User) == 0 || json.Unmarshal(state.User, &user) != nil || user == (User{}) {
		_ = s.Clear()
		return Session{}, false
	}

	return Session{
		AccessToken:  state.Token,
		RefreshToken: state.RefreshToken,
		User:         user,
	}, true
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session state file: %w", err)
	}
	return nil
}

// Package session persists the authenticated identity across runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Session is the current authenticated identity. Exactly one session is
// active per client instance.
type Session struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"-"`
}

// stored is the on-disk shape: the serialized user record under "user" and
// the bearer token under "token".
type stored struct {
	User  Session `json:"user"`
	Token string  `json:"token"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "flavourfusion", "session.json"), nil
}

// Load reads the persisted session. The second return value reports
// presence; a missing file is not an error.
func (s *Store) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var st stored
	if err := json.Unmarshal(data, &st); err != nil {
		return Session{}, false, fmt.Errorf("failed to decode session file: %w", err)
	}
	if st.Token == "" {
		return Session{}, false, nil
	}

	sess := st.User
	sess.Token = st.Token
	return sess, true, nil
}

// Save persists the session, creating the parent directory if needed.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(stored{User: sess, Token: sess.Token}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

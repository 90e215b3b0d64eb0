// Package tokenstore persists the single bearer token the portal is allowed
// to hold. A missing file simply means "no token"; every other failure is
// surfaced.
package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission for the token; it is a credential.
const tokenFileMode = 0o600

// Store reads and writes the persisted token under a fixed path.
type Store struct {
	path string
}

// New creates a store rooted at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token durably, creating parent directories as needed.
func (s *Store) Save(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %v", ErrSave, err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token), tokenFileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// Clear deletes the persisted token. Clearing an absent token is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrClear, err)
	}
	return nil
}

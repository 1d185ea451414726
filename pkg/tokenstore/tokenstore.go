/**
 * @description
 * File-backed bearer token storage for the CLI. The dashboard and admin
 * tokens are kept in separate files under one directory so either session
 * can be cleared without touching the other.
 */
package tokenstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Key names the stored token.
type Key string

const (
	DashboardToken Key = "token"
	AdminToken     Key = "adminToken"
)

// ErrNoToken is returned when no token has been saved under the key.
var ErrNoToken = errors.New("no stored token")

// Store reads and writes tokens under a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// DefaultStore places the token directory under the user config dir.
func DefaultStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(base, "selewanto"))
}

func (s *Store) path(key Key) string {
	return filepath.Join(s.dir, string(key))
}

// Get returns the stored token for key, or ErrNoToken.
func (s *Store) Get(key Key) (string, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Set saves the token for key.
func (s *Store) Set(key Key, token string) error {
	return os.WriteFile(s.path(key), []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// Clear removes the token for key. Missing tokens are not an error.
func (s *Store) Clear(key Key) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

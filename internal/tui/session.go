package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TokenFile persists the access token between runs.
type TokenFile struct {
	path string
}

// NewTokenFile returns a store at path. An empty path resolves to
// quotevault/token under the user's config directory.
func NewTokenFile(path string) (*TokenFile, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}

		path = filepath.Join(dir, "quotevault", "token")
	}

	return &TokenFile{path: path}, nil
}

// Path returns the file location.
func (t *TokenFile) Path() string {
	return t.path
}

// Load returns the saved token, or "" when there is none.
func (t *TokenFile) Load() (string, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Save writes token, or removes the file when token is empty.
func (t *TokenFile) Save(token string) error {
	if token == "" {
		if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing token file: %w", err)
		}

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}

	if err := os.WriteFile(t.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	return nil
}

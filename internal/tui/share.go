package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ShareFolder is where rendered share images are saved.
type ShareFolder struct {
	dir string
}

// NewShareFolder returns a folder at dir. An empty dir resolves to
// quotevault/shares under the user's data directory ($XDG_DATA_HOME, or
// ~/.local/share).
func NewShareFolder(dir string) (*ShareFolder, error) {
	if dir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolving data dir: %w", err)
			}

			base = filepath.Join(home, ".local", "share")
		}

		dir = filepath.Join(base, "quotevault", "shares")
	}

	return &ShareFolder{dir: dir}, nil
}

// Dir returns the folder location.
func (f *ShareFolder) Dir() string {
	return f.dir
}

// Save writes a PNG for quoteID rendered with template and returns its path.
// Saving the same quote and template again overwrites the file.
func (f *ShareFolder) Save(quoteID, template string, png []byte) (string, error) {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return "", fmt.Errorf("creating share dir: %w", err)
	}

	path := filepath.Join(f.dir, fileSlug(quoteID)+"-"+fileSlug(template)+".png")
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return "", fmt.Errorf("writing share image: %w", err)
	}

	return path, nil
}

// fileSlug keeps letters, digits and dashes; anything else becomes a dash.
func fileSlug(s string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(s))

	if slug = strings.Trim(slug, "-"); slug == "" {
		return "quote"
	}

	return slug
}

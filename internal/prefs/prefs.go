// Package prefs persists small user preferences between bookshelf runs.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bookshelf/internal/config"
)

// DefaultPath is where preferences live unless a caller overrides it.
const DefaultPath = "~/.config/bookshelf/prefs.toml"

// DefaultTheme is used when no preference has been saved.
const DefaultTheme = "Dracula"

// Prefs holds the values bookshelf remembers.
type Prefs struct {
	Theme string `toml:"theme"`
}

// Store reads and writes a single prefs file.
type Store struct {
	path string
}

// NewStore resolves path (DefaultPath when empty).
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	return &Store{path: resolved}, nil
}

// Path returns the resolved file location.
func (s *Store) Path() string { return s.path }

// Load returns the saved preferences. Anything unreadable degrades to the
// defaults; only the caller's UI would suffer from a broken prefs file.
func (s *Store) Load() Prefs {
	p := Prefs{Theme: DefaultTheme}
	if s == nil {
		return p
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: DefaultTheme}
	}
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	return p
}

// Save writes p, creating parent directories as needed.
func (s *Store) Save(p Prefs) error {
	if s == nil {
		return errors.New("prefs: nil store")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore(%q) returned error: %v", path, err)
	}
	return s
}

func TestNewStore_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := newStore(t, "")
	want := filepath.Join(home, ".config", "bookshelf", "prefs.toml")
	if s.Path() != want {
		t.Fatalf("Path = %q, want %q", s.Path(), want)
	}
	if got := s.Load().Theme; got != DefaultTheme {
		t.Fatalf("Theme = %q, want %q", got, DefaultTheme)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s := newStore(t, path)

	if err := s.Save(Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := newStore(t, path).Load().Theme; got != "Slate" {
		t.Fatalf("Theme = %q, want Slate", got)
	}
}

func TestLoad_DegradesToDefaults(t *testing.T) {
	cases := map[string]string{
		"empty theme":  "theme = \"  \"\n",
		"invalid toml": "not valid toml {{{\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if got := newStore(t, path).Load().Theme; got != DefaultTheme {
				t.Fatalf("Theme = %q, want %q", got, DefaultTheme)
			}
		})
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if got := s.Load().Theme; got != DefaultTheme {
		t.Fatalf("Theme = %q, want %q", got, DefaultTheme)
	}
	if err := s.Save(Prefs{}); err == nil {
		t.Fatalf("Save on nil store returned nil error")
	}
}

package ui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/catalog"
)

// fakeCatalog records calls and answers from fixed results.
type fakeCatalog struct {
	books     []catalog.Book
	listErr   error
	getBook   catalog.Book
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lists   int
	gets    []catalog.ID
	created []catalog.Fields
	updated map[catalog.ID]catalog.Fields
	deleted []catalog.ID
}

func (f *fakeCatalog) List(context.Context) ([]catalog.Book, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]catalog.Book(nil), f.books...), nil
}

func (f *fakeCatalog) Get(_ context.Context, id catalog.ID) (catalog.Book, error) {
	f.gets = append(f.gets, id)
	return f.getBook, f.getErr
}

func (f *fakeCatalog) Create(_ context.Context, fields catalog.Fields) (*catalog.Book, error) {
	f.created = append(f.created, fields)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return nil, nil
}

func (f *fakeCatalog) Update(_ context.Context, id catalog.ID, fields catalog.Fields) (*catalog.Book, error) {
	if f.updated == nil {
		f.updated = map[catalog.ID]catalog.Fields{}
	}
	f.updated[id] = fields
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return nil, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id catalog.ID) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

var fixedNow = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.Local)

// expiry is what the fake clock hands back instead of sleeping.
type expiry struct {
	d   time.Duration
	msg tea.Msg
}

func testEnv(t *testing.T, client catalog.Catalog) *env {
	t.Helper()
	return &env{
		ctx:     context.Background(),
		catalog: client,
		keys:    DefaultKeyMap(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return fixedNow },
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return func() tea.Msg { return expiry{d: d, msg: msg} }
		},
	}
}

// collect runs cmd and every command batched inside it, returning the
// messages produced. Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, tick := msg.(spinner.TickMsg); tick {
		return nil
	}
	return []tea.Msg{msg}
}

// only returns the single message of type T produced by cmd.
func only[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var found []T
	for _, msg := range collect(cmd) {
		if m, ok := msg.(T); ok {
			found = append(found, m)
		}
	}
	if len(found) != 1 {
		var zero T
		t.Fatalf("got %d messages of type %T, want 1", len(found), zero)
	}
	return found[0]
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(v view, text string) view {
	for _, r := range text {
		v, _ = v.Update(keyPress(string(r)))
	}
	return v
}

func sampleBooks() []catalog.Book {
	return []catalog.Book{
		{ID: "1", Title: "Emma", Author: "Jane Austen", Genre: "Romance", PublishedDate: "1815-12-23"},
		{ID: "2", Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublishedDate: "1965-08-01T00:00:00.000Z"},
	}
}

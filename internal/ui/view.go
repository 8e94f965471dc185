package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/catalog"
)

// view is one routed screen. Views own their state; the root model only
// forwards messages to the active one.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View(theme Theme, width, height int) string
	Title() string
	Commands() []command
	// Capturing reports whether keys go to a text field or modal, which
	// suspends single-letter global bindings.
	Capturing() bool
}

type command struct{ key, desc string }

// env is shared by every view of one program.
type env struct {
	ctx     context.Context
	catalog catalog.Catalog
	keys    keyMap
	logger  *slog.Logger
	now     func() time.Time
	after   func(d time.Duration, msg tea.Msg) tea.Cmd
}

func afterTick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// describeError turns a catalog failure into the text shown after a
// banner prefix. It returns "" when the server gave no usable message.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	var transport *catalog.TransportError
	if errors.As(err, &transport) {
		return "could not reach the catalog service"
	}
	var remote *catalog.RemoteError
	if errors.As(err, &remote) {
		if remote.Message != "" {
			return remote.Message
		}
		if remote.Err != nil {
			return "unexpected response from the catalog service"
		}
		return ""
	}
	return err.Error()
}

// banner joins prefix with the described error, e.g.
// "Failed to add book: Title already exists".
func banner(prefix string, err error) string {
	if detail := describeError(err); detail != "" {
		return prefix + ": " + detail
	}
	return prefix + "."
}

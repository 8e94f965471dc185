package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/catalog"
)

// Modal is a dialog drawn over a view. Update reports whether the modal
// should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// deleteConfirmedMsg is emitted when the user accepts a delete prompt.
type deleteConfirmedMsg struct {
	token int
	id    catalog.ID
}

// confirmDelete asks before a book is removed.
type confirmDelete struct {
	token int
	book  catalog.Book
}

func (c confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Confirm):
		token, id := c.token, c.book.ID
		return c, func() tea.Msg { return deleteConfirmedMsg{token: token, id: id} }, true
	case key.Matches(km, keys.Cancel):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDelete) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete book"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("Delete \"%s\"?", truncate(c.book.Title, 30))))
	b.WriteString("\n")
	if c.book.Author != "" {
		b.WriteString(styles.MutedText.Render("by " + truncate(c.book.Author, 30)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("y: Delete  •  n/esc: Keep"))

	return overlay(theme, width, height, styles.Modal.
		BorderForeground(lipgloss.Color(theme.Danger)).
		Width(44).
		Render(b.String()))
}

// overlay centers content on a blank screen.
func overlay(theme Theme, width, height int, content string) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

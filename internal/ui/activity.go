package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/logtail"
)

const activityLines = 400

type activityMsg struct {
	lines []string
	err   error
}

func readActivity(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, activityLines)
		return activityMsg{lines: lines, err: err}
	}
}

// activityOverlay shows the tail of the client log.
type activityOverlay struct {
	path     string
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
	loaded   bool
}

func newActivityOverlay(path string, width, height int) *activityOverlay {
	vp := viewport.New(max(width-6, 20), max(height-8, 5))
	return &activityOverlay{path: path, viewport: vp}
}

func (a *activityOverlay) resize(width, height int) {
	a.viewport.Width = max(width-6, 20)
	a.viewport.Height = max(height-8, 5)
}

// Update handles keys; it reports true when the overlay should close.
func (a *activityOverlay) Update(msg tea.Msg, keys keyMap, theme Theme) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case activityMsg:
		a.loaded = true
		a.err = msg.err
		a.entries = a.entries[:0]
		for _, line := range msg.lines {
			a.entries = append(a.entries, logtail.Parse(line))
		}
		a.viewport.SetContent(a.render(theme))
		a.viewport.GotoBottom()
		return nil, false
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Activity), key.Matches(msg, keys.Quit):
			return nil, true
		case key.Matches(msg, keys.Reload):
			return readActivity(a.path), false
		case key.Matches(msg, keys.Top):
			a.viewport.GotoTop()
			return nil, false
		case key.Matches(msg, keys.Bottom):
			a.viewport.GotoBottom()
			return nil, false
		}
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd, false
}

func (a *activityOverlay) render(theme Theme) string {
	styles := theme.Styles()
	if a.err != nil {
		return styles.DangerText.Render(a.err.Error())
	}
	if len(a.entries) == 0 {
		return styles.MutedText.Render("No activity yet.")
	}
	lines := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		lines = append(lines, formatEntry(styles, e))
	}
	return strings.Join(lines, "\n")
}

func formatEntry(styles Styles, e logtail.Entry) string {
	if e.Level == "" {
		return styles.Text.Render(e.Message)
	}
	level := styles.InfoText
	switch strings.ToUpper(e.Level) {
	case "WARN":
		level = styles.WarningText
	case "ERROR":
		level = styles.DangerText
	case "DEBUG":
		level = styles.FaintText
	}
	parts := []string{
		styles.MutedText.Render(e.ShortTime()),
		level.Bold(true).Render(padRight(strings.ToUpper(e.Level), 5)),
		styles.Text.Render(e.Message),
	}
	for _, attr := range e.Attrs {
		parts = append(parts, styles.FaintText.Render(attr.Key+"=")+styles.AccentText.Render(attr.Value))
	}
	return strings.Join(parts, " ")
}

func (a *activityOverlay) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	a.viewport.SetContent(a.render(theme))

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Activity"))
	b.WriteString(" ")
	b.WriteString(styles.FaintText.Render(truncateMiddle(a.path, max(width-20, 10))))
	b.WriteString("\n\n")
	if !a.loaded {
		b.WriteString(styles.MutedText.Render("Reading log..."))
	} else {
		b.WriteString(a.viewport.View())
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k: Scroll  •  g/G: Top/Bottom  •  r: Refresh  •  esc: Close"))

	return overlay(theme, width, height, styles.Modal.Width(max(width-2, 20)).Render(b.String()))
}

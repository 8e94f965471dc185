package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader draws the top bar: logo, screen title and catalog address.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Join([]string{
		bg.Render("bookshelf", styles.Logo),
		bg.Render(m.active.Title(), styles.Text.Bold(true)),
	}, "  ")

	right := ""
	if m.apiURL != "" {
		right = bg.Render(truncateMiddle(m.apiURL, max(m.width/3, 12)), styles.MutedText)
	}
	gap := max(m.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderCommandBar lists the keys of the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Render(":", styles.FaintText)

	commands := m.active.Commands()
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if !m.active.Capturing() {
		segments = append(segments,
			bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	}
	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

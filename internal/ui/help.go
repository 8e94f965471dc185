package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpTitles = []string{"Navigation", "Search & sort", "Books", "Forms", "General"}

// renderHelp draws the key reference from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.env.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			b.WriteString(helpLine(keyStyle, styles, binding))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("Themes: " + strings.Join(themeNames(), ", ")))

	return overlay(m.theme, m.width, m.height, styles.Modal.Width(44).Render(b.String()))
}

func helpLine(keyStyle lipgloss.Style, styles Styles, binding key.Binding) string {
	h := binding.Help()
	return keyStyle.Render(h.Key) + styles.Text.Render(h.Desc) + "\n"
}

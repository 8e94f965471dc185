package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/state"
)

// RouteKind names a screen.
type RouteKind int

const (
	RouteCollection RouteKind = iota // "/"
	RouteAdd                         // "/add"
	RouteEdit                        // "/edit/{id}"
)

// Route is a navigation target. Handoff carries a one-shot message to the
// collection view.
type Route struct {
	Kind    RouteKind
	ID      catalog.ID
	Handoff *state.Handoff
}

// Path renders the route the way the web client addressed it.
func (r Route) Path() string {
	switch r.Kind {
	case RouteAdd:
		return "/add"
	case RouteEdit:
		return "/edit/" + string(r.ID)
	default:
		return "/"
	}
}

type navigateMsg struct {
	route Route
}

func navigate(r Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

func backToCollection(message string) tea.Cmd {
	return navigate(Route{Kind: RouteCollection, Handoff: state.NewHandoff(message)})
}

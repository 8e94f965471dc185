// Package ui is the bubbletea front end of bookshelf.
//
// The root Model routes between three screens, mirroring the paths of the
// web client it replaces:
//
//	/           collection view (list, search, sort, delete)
//	/add        create flow
//	/edit/{id}  update flow
//
// Each screen is a view. A view issues catalog calls as tea.Cmds and gets
// the results back as messages stamped with its token. Navigating creates a
// new view with a new token, so a late result for a screen the user already
// left is ignored rather than applied to the wrong state.
//
// Create and update flows return to the collection with a one-shot
// state.Handoff; the new collection view shows it as a timed notice after
// its first successful load.
//
// Overlays (help, activity log, delete confirmation) are drawn centered with
// lipgloss.Place over an empty screen.
package ui

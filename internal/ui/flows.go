package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/form"
)

// Flow messages.
const (
	AddFailedPrefix    = "Failed to add book"
	UpdateFailedPrefix = "Failed to update book"
	NotFoundMessage    = "Book not found."
	FetchFailedMessage = "Failed to load book."
)

type bookSavedMsg struct {
	token int
	title string
	err   error
}

type bookFetchedMsg struct {
	token int
	book  catalog.Book
	err   error
}

// createView drives the add screen: an empty editor whose submit calls
// Create.
type createView struct {
	env    *env
	token  int
	editor editor
	banner string
	saving bool
}

func newCreateView(e *env, token int) *createView {
	labels := editorLabels{Heading: "Add a new book", Submit: "Add Book", Busy: "Adding...", ShowCancel: true}
	return &createView{
		env:    e,
		token:  token,
		editor: newEditor(token, form.Draft{}, labels, e.keys, e.now),
	}
}

func (v *createView) Init() tea.Cmd   { return nil }
func (v *createView) Title() string   { return "Add Book" }
func (v *createView) Capturing() bool { return true }

func (v *createView) Commands() []command {
	return []command{{"enter", "Save"}, {"tab", "Next"}, {"esc", "Cancel"}}
}

func (v *createView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case submitMsg:
		if msg.token != v.token || v.saving {
			return v, nil
		}
		v.saving = true
		v.banner = ""
		v.editor.busy = true
		ctx, client, token := v.env.ctx, v.env.catalog, v.token
		title, fields := msg.draft.Title, msg.draft.Fields()
		return v, func() tea.Msg {
			_, err := client.Create(ctx, fields)
			return bookSavedMsg{token: token, title: title, err: err}
		}

	case bookSavedMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.saving = false
		v.editor.SetBusy(false)
		if msg.err != nil {
			v.env.logger.Warn("create book failed", "error", msg.err)
			v.banner = banner(AddFailedPrefix, msg.err)
			return v, nil
		}
		v.env.logger.Info("book created", "title", msg.title)
		return v, backToCollection(fmt.Sprintf("\"%s\" added successfully!", msg.title))

	case cancelMsg:
		if msg.token != v.token {
			return v, nil
		}
		return v, navigate(Route{Kind: RouteCollection})
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *createView) View(theme Theme, width, height int) string {
	return renderFormScreen(theme, v.banner, v.editor.View(theme, width-4), width, height)
}

type fetchPhase int

const (
	fetchLoading fetchPhase = iota
	fetchFailed
	fetchReady
)

// updateView drives the edit screen: fetch the record, then an editor
// whose submit calls Update. The form never renders until a fetch has
// succeeded.
type updateView struct {
	env     *env
	token   int
	id      catalog.ID
	phase   fetchPhase
	failure string
	editor  editor
	banner  string
	saving  bool
	spinner spinner.Model
}

func newUpdateView(e *env, token int, id catalog.ID) *updateView {
	return &updateView{
		env:     e,
		token:   token,
		id:      id,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (v *updateView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetch())
}

func (v *updateView) fetch() tea.Cmd {
	v.phase = fetchLoading
	v.failure = ""
	ctx, client, token, id := v.env.ctx, v.env.catalog, v.token, v.id
	return func() tea.Msg {
		book, err := client.Get(ctx, id)
		return bookFetchedMsg{token: token, book: book, err: err}
	}
}

func (v *updateView) Title() string   { return "Edit Book" }
func (v *updateView) Capturing() bool { return v.phase == fetchReady }

func (v *updateView) Commands() []command {
	switch v.phase {
	case fetchFailed:
		return []command{{"r", "Retry"}, {"esc", "Back"}}
	case fetchLoading:
		return []command{{"esc", "Back"}}
	}
	return []command{{"enter", "Save"}, {"tab", "Next"}, {"esc", "Cancel"}}
}

func (v *updateView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case bookFetchedMsg:
		if msg.token != v.token {
			return v, nil
		}
		if msg.err != nil {
			v.env.logger.Warn("get book failed", "id", v.id, "error", msg.err)
			v.phase = fetchFailed
			v.failure = FetchFailedMessage
			if errors.Is(msg.err, catalog.ErrNotFound) {
				v.failure = NotFoundMessage
			}
			return v, nil
		}
		labels := editorLabels{Heading: "Edit book", Submit: "Update Book", Busy: "Updating...", ShowCancel: true}
		v.editor = newEditor(v.token, form.FromBook(msg.book), labels, v.env.keys, v.env.now)
		v.phase = fetchReady
		return v, nil

	case submitMsg:
		if msg.token != v.token || v.phase != fetchReady || v.saving {
			return v, nil
		}
		v.saving = true
		v.banner = ""
		v.editor.busy = true
		ctx, client, token, id := v.env.ctx, v.env.catalog, v.token, v.id
		title, fields := msg.draft.Title, msg.draft.Fields()
		return v, func() tea.Msg {
			_, err := client.Update(ctx, id, fields)
			return bookSavedMsg{token: token, title: title, err: err}
		}

	case bookSavedMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.saving = false
		v.editor.SetBusy(false)
		if msg.err != nil {
			v.env.logger.Warn("update book failed", "id", v.id, "error", msg.err)
			v.banner = banner(UpdateFailedPrefix, msg.err)
			return v, nil
		}
		v.env.logger.Info("book updated", "id", v.id, "title", msg.title)
		return v, backToCollection(fmt.Sprintf("\"%s\" updated successfully!", msg.title))

	case cancelMsg:
		if msg.token != v.token {
			return v, nil
		}
		return v, navigate(Route{Kind: RouteCollection})

	case spinner.TickMsg:
		if v.phase == fetchLoading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}

	case tea.KeyMsg:
		if v.phase != fetchReady {
			switch {
			case key.Matches(msg, v.env.keys.Back):
				return v, navigate(Route{Kind: RouteCollection})
			case key.Matches(msg, v.env.keys.Reload) && v.phase == fetchFailed:
				return v, tea.Batch(v.spinner.Tick, v.fetch())
			}
			return v, nil
		}
	}

	if v.phase != fetchReady {
		return v, nil
	}
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *updateView) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	switch v.phase {
	case fetchLoading:
		msg := styles.AccentText.Render(v.spinner.View()) + " " + styles.MutedText.Render("Loading book...")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	case fetchFailed:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				styles.DangerText.Render(v.failure),
				"",
				styles.FaintText.Render("r: Retry  •  esc: Back to list"),
			))
	}
	return renderFormScreen(theme, v.banner, v.editor.View(theme, width-4), width, height)
}

func renderFormScreen(theme Theme, bannerText, body string, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	if bannerText != "" {
		b.WriteString(styles.DangerText.Render(truncate(bannerText, max(width-4, 10))))
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	return lipgloss.NewStyle().Padding(1, 2).Width(width).Height(height).Render(b.String())
}

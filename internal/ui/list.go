package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/state"
)

type booksLoadedMsg struct {
	token int
	books []catalog.Book
	err   error
}

type bookDeletedMsg struct {
	token int
	id    catalog.ID
	err   error
}

type noticeExpiredMsg struct {
	token int
	seq   int
}

// collectionView lists the catalog with live search, sorting and delete.
type collectionView struct {
	env   *env
	token int
	coll  *state.Collection

	search    textinput.Model
	searching bool

	selectedID catalog.ID
	modal      Modal
	deleting   bool
	spinner    spinner.Model
}

func newCollectionView(e *env, token int, handoff *state.Handoff) *collectionView {
	return &collectionView{
		env:     e,
		token:   token,
		coll:    state.NewCollection(handoff),
		search:  newTextInput("title, author or genre", 100, 30),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (v *collectionView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetch())
}

func (v *collectionView) fetch() tea.Cmd {
	ctx, client, token := v.env.ctx, v.env.catalog, v.token
	return func() tea.Msg {
		books, err := client.List(ctx)
		return booksLoadedMsg{token: token, books: books, err: err}
	}
}

func (v *collectionView) reload() tea.Cmd {
	v.coll.StartLoading()
	return tea.Batch(v.spinner.Tick, v.fetch())
}

func (v *collectionView) remove(id catalog.ID) tea.Cmd {
	v.deleting = true
	v.coll.InlineError = ""
	ctx, client, token := v.env.ctx, v.env.catalog, v.token
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		return bookDeletedMsg{token: token, id: id, err: client.Delete(ctx, id)}
	})
}

func (v *collectionView) expireAfter(seq int, d time.Duration) tea.Cmd {
	if seq == 0 {
		return nil
	}
	return v.env.after(d, noticeExpiredMsg{token: v.token, seq: seq})
}

func (v *collectionView) Capturing() bool {
	return v.searching || v.modal != nil
}

func (v *collectionView) Title() string {
	if v.coll.Phase != state.PhaseReady {
		return "Books"
	}
	visible, total := len(v.coll.Visible()), v.coll.Len()
	if visible == total {
		return fmt.Sprintf("Books (%d)", total)
	}
	return fmt.Sprintf("Books (%d of %d)", visible, total)
}

func (v *collectionView) Commands() []command {
	switch {
	case v.modal != nil:
		return []command{{"y", "Delete"}, {"n", "Keep"}}
	case v.searching:
		return []command{{"enter", "Done"}, {"esc", "Clear"}}
	case v.coll.Phase == state.PhaseErrorLoading:
		return []command{{"r", "Retry"}, {"a", "Add"}, {"q", "Quit"}}
	}
	return []command{
		{"/", "Search"},
		{"s", "Sort " + v.coll.Query.Field.Label()},
		{"o", orderLabel(v.coll.Query.Order)},
		{"a", "Add"},
		{"e", "Edit"},
		{"d", "Delete"},
		{"r", "Reload"},
		{"?", "More"},
	}
}

func (v *collectionView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case booksLoadedMsg:
		if msg.token != v.token {
			return v, nil
		}
		if msg.err != nil {
			v.env.logger.Warn("list books failed", "error", msg.err)
			v.coll.LoadFailed(msg.err)
			return v, nil
		}
		if v.coll.Loaded(msg.books, v.env.now()) {
			return v, v.expireAfter(v.coll.Notice.Seq, state.HandoffNoticeDuration)
		}
		return v, nil

	case bookDeletedMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.deleting = false
		if msg.err != nil {
			v.env.logger.Warn("delete book failed", "id", msg.id, "error", msg.err)
			v.coll.DeleteFailed()
			return v, nil
		}
		v.env.logger.Info("book deleted", "id", msg.id)
		return v, v.expireAfter(v.coll.Deleted(msg.id, v.env.now()), state.DeleteNoticeDuration)

	case noticeExpiredMsg:
		if msg.token == v.token {
			v.coll.ExpireNotice(msg.seq)
		}
		return v, nil

	case deleteConfirmedMsg:
		if msg.token != v.token || v.deleting {
			return v, nil
		}
		return v, v.remove(msg.id)

	case spinner.TickMsg:
		if v.coll.Phase != state.PhaseLoading && !v.deleting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *collectionView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	keys := v.env.keys

	if v.modal != nil {
		next, cmd, closed := v.modal.Update(msg, keys)
		if closed {
			v.modal = nil
		} else {
			v.modal = next
		}
		return v, cmd
	}

	if v.searching {
		switch msg.Type {
		case tea.KeyEnter:
			v.searching = false
			v.search.Blur()
			return v, nil
		case tea.KeyEsc:
			v.searching = false
			v.search.Blur()
			v.search.SetValue("")
			v.coll.Query.Term = ""
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.coll.Query.Term = v.search.Value()
		return v, cmd
	}

	switch {
	case key.Matches(msg, keys.Add):
		return v, navigate(Route{Kind: RouteAdd})
	case key.Matches(msg, keys.Reload):
		if v.coll.Phase == state.PhaseLoading {
			return v, nil
		}
		return v, v.reload()
	}

	if v.coll.Phase != state.PhaseReady {
		return v, nil
	}

	visible := v.coll.Visible()
	idx := v.selectedIndex(visible)

	switch {
	case key.Matches(msg, keys.Search):
		v.searching = true
		return v, v.search.Focus()
	case key.Matches(msg, keys.CycleSort):
		v.coll.Query.Field = v.coll.Query.Field.Next()
	case key.Matches(msg, keys.ToggleSort):
		v.coll.Query.Order = v.coll.Query.Order.Toggle()
	case key.Matches(msg, keys.Down):
		v.selectAt(visible, idx+1)
	case key.Matches(msg, keys.Up):
		v.selectAt(visible, idx-1)
	case key.Matches(msg, keys.Top):
		v.selectAt(visible, 0)
	case key.Matches(msg, keys.Bottom):
		v.selectAt(visible, len(visible)-1)
	case key.Matches(msg, keys.Edit):
		if idx >= 0 {
			return v, navigate(Route{Kind: RouteEdit, ID: visible[idx].ID})
		}
	case key.Matches(msg, keys.Delete):
		if idx >= 0 && !v.deleting {
			v.modal = confirmDelete{token: v.token, book: visible[idx]}
		}
	}
	return v, nil
}

// selectedIndex locates the selected book in visible, falling back to the
// first row when the selection was filtered out or removed.
func (v *collectionView) selectedIndex(visible []catalog.Book) int {
	if len(visible) == 0 {
		return -1
	}
	for i, b := range visible {
		if b.ID == v.selectedID {
			return i
		}
	}
	v.selectedID = visible[0].ID
	return 0
}

func (v *collectionView) selectAt(visible []catalog.Book, i int) {
	if len(visible) == 0 {
		return
	}
	i = max(0, min(i, len(visible)-1))
	v.selectedID = visible[i].ID
}

func orderLabel(o state.SortOrder) string {
	if o == state.Descending {
		return "Desc"
	}
	return "Asc"
}

func (v *collectionView) View(theme Theme, width, height int) string {
	if v.modal != nil {
		return v.modal.View(theme, width, height)
	}

	styles := theme.Styles()
	var b strings.Builder

	switch v.coll.Phase {
	case state.PhaseLoading:
		msg := styles.AccentText.Render(v.spinner.View()) + " " + styles.MutedText.Render("Loading books...")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)

	case state.PhaseErrorLoading:
		lines := []string{styles.DangerText.Render(state.LoadFailedMessage)}
		if detail := describeError(v.coll.LoadError); detail != "" {
			lines = append(lines, styles.MutedText.Render(detail))
		}
		lines = append(lines, "", styles.FaintText.Render("Press r to retry"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, lines...))
	}

	b.WriteString(v.renderToolbar(styles, width))
	b.WriteString("\n")
	used := 1
	if v.coll.Notice.Active() {
		b.WriteString(styles.SuccessText.Render(truncate(v.coll.Notice.Text, width)))
		b.WriteString("\n")
		used++
	}
	if v.coll.InlineError != "" {
		b.WriteString(styles.DangerText.Render(v.coll.InlineError))
		b.WriteString("\n")
		used++
	}

	visible := v.coll.Visible()
	boxHeight := max(height-used, 3)
	if len(visible) == 0 {
		empty := lipgloss.Place(width-2, boxHeight-2, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(v.coll.EmptyText()))
		b.WriteString(renderTitledBox(theme, v.Title(), empty, width, boxHeight))
		return b.String()
	}
	b.WriteString(renderTitledBox(theme, v.Title(), v.renderTable(theme, visible, width-2, boxHeight-2), width, boxHeight))
	return b.String()
}

func (v *collectionView) renderToolbar(styles Styles, width int) string {
	label := styles.MutedText.Render("Search: ")
	if v.searching {
		label = styles.AccentText.Render("Search: ")
	}
	search := v.search.View()
	if !v.searching && v.search.Value() == "" {
		search = styles.FaintText.Render("press / to search")
	}
	arrow := "↑"
	if v.coll.Query.Order == state.Descending {
		arrow = "↓"
	}
	sort := styles.MutedText.Render("Sort: ") + styles.AccentText.Render(v.coll.Query.Field.Label()+" "+arrow)
	if v.deleting {
		sort = styles.WarningText.Render(v.spinner.View()+" Deleting...") + "  " + sort
	}
	left := label + search
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(sort), 1)
	return left + strings.Repeat(" ", gap) + sort
}

// renderTable draws the visible rows, scrolled so the selection is on
// screen.
func (v *collectionView) renderTable(theme Theme, visible []catalog.Book, width, height int) string {
	styles := theme.Styles()
	dateWidth := 12
	rest := max(width-dateWidth-3, 12)
	titleWidth := rest * 40 / 100
	authorWidth := rest * 35 / 100
	genreWidth := rest - titleWidth - authorWidth

	row := func(title, author, genre, date string) string {
		return padRight(title, titleWidth) + " " +
			padRight(author, authorWidth) + " " +
			padRight(genre, genreWidth) + " " +
			padRight(date, dateWidth)
	}

	lines := []string{styles.MutedText.Bold(true).Render(row("Title", "Author", "Genre", "Published"))}

	rows := max(height-1, 1)
	selected := v.selectedIndex(visible)
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(start+rows, len(visible))

	for i := start; i < end; i++ {
		b := visible[i]
		text := row(b.Title, b.Author, b.Genre, catalog.DateOnly(b.PublishedDate))
		if i == selected {
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		lines = append(lines, styles.Text.Render(text))
	}
	return strings.Join(lines, "\n")
}

// renderTitledBox frames content with the title set into the top border:
// ┌─── Title ───┐
func renderTitledBox(theme Theme, title, content string, width, height int) string {
	bg := NewBgStyle(theme.SurfaceAlt)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Text))

	inner := max(width-2, 4)
	title = truncate(title, inner-4)
	titleLen := lipgloss.Width(title)
	leftPad := max((inner-titleLen-2)/2, 0)
	rightPad := max(inner-titleLen-2-leftPad, 0)

	top := bg.Render("┌"+strings.Repeat("─", leftPad), border) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad)+"┐", border)
	bottom := bg.Render("└"+strings.Repeat("─", inner)+"┘", border)

	contentLines := strings.Split(content, "\n")
	body := make([]string, 0, height)
	for i := 0; i < max(height-2, 0); i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		body = append(body, bg.Render("│", border)+bg.FillLine(line, inner)+bg.Render("│", border))
	}
	return top + "\n" + strings.Join(body, "\n") + "\n" + bottom
}

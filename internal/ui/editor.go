package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/form"
)

// submitMsg carries a validated draft to the owning flow.
type submitMsg struct {
	token int
	draft form.Draft
}

// cancelMsg asks the owning flow to leave without saving.
type cancelMsg struct {
	token int
}

// editorLabels are the texts that differ between the add and edit screens.
type editorLabels struct {
	Heading    string
	Submit     string
	Busy       string
	ShowCancel bool
}

// editor is the four-field book form. It validates locally and hands the
// draft to its owner; it never talks to the catalog itself.
type editor struct {
	token   int
	labels  editorLabels
	keys    keyMap
	now     func() time.Time
	inputs  []textinput.Model
	focus   form.Field
	errors  form.Errors
	busy    bool
	spinner spinner.Model
}

var placeholders = map[form.Field]string{
	form.FieldTitle:         "e.g. Dune",
	form.FieldAuthor:        "e.g. Frank Herbert",
	form.FieldGenre:         "e.g. Science Fiction (tab completes)",
	form.FieldPublishedDate: "YYYY-MM-DD",
}

func newEditor(token int, initial form.Draft, labels editorLabels, keys keyMap, now func() time.Time) editor {
	e := editor{
		token:   token,
		labels:  labels,
		keys:    keys,
		now:     now,
		inputs:  make([]textinput.Model, len(form.AllFields)),
		errors:  form.Errors{},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for _, f := range form.AllFields {
		ti := newTextInput(placeholders[f], 200, 40)
		ti.SetValue(initial.Get(f))
		e.inputs[f] = ti
	}
	e.setFocus(form.FieldTitle)
	return e
}

// newTextInput builds a prompt-less input with a steady cursor.
func newTextInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Draft returns the current field values exactly as typed.
func (e editor) Draft() form.Draft {
	var d form.Draft
	for _, f := range form.AllFields {
		d.Set(f, e.inputs[f].Value())
	}
	return d
}

// SetBusy toggles the in-flight state. The returned command starts the
// spinner. A valid submit marks the editor busy on its own, so a second
// enter is ignored until the owner clears it.
func (e *editor) SetBusy(busy bool) tea.Cmd {
	e.busy = busy
	if busy {
		return e.spinner.Tick
	}
	return nil
}

func (e *editor) setFocus(f form.Field) {
	e.inputs[e.focus].Blur()
	e.focus = f
	e.inputs[f].Focus()
	e.inputs[f].CursorEnd()
}

func (e *editor) move(delta int) {
	n := len(form.AllFields)
	e.setFocus(form.Field((int(e.focus) + delta + n) % n))
}

func (e *editor) submit() tea.Cmd {
	d := e.Draft()
	errs := form.Validate(d, e.now())
	if !errs.Valid() {
		e.errors = errs
		for _, f := range form.AllFields {
			if _, bad := errs[f]; bad {
				e.setFocus(f)
				break
			}
		}
		return nil
	}
	e.errors = form.Errors{}
	e.busy = true
	token := e.token
	return tea.Batch(e.spinner.Tick, func() tea.Msg { return submitMsg{token: token, draft: d} })
}

func (e editor) Update(msg tea.Msg) (editor, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !e.busy {
			return e, nil
		}
		var cmd tea.Cmd
		e.spinner, cmd = e.spinner.Update(msg)
		return e, cmd

	case tea.KeyMsg:
		if e.busy {
			return e, nil
		}
		switch {
		case key.Matches(msg, e.keys.Back):
			if !e.labels.ShowCancel {
				return e, nil
			}
			token := e.token
			return e, func() tea.Msg { return cancelMsg{token: token} }
		case key.Matches(msg, e.keys.Submit):
			return e, e.submit()
		case msg.Type == tea.KeyTab && e.focus == form.FieldGenre:
			if completed, ok := form.CompleteGenre(e.inputs[e.focus].Value()); ok {
				e.inputs[e.focus].SetValue(completed)
				e.inputs[e.focus].CursorEnd()
				e.errors.Clear(e.focus)
				return e, nil
			}
			e.move(1)
			return e, nil
		case key.Matches(msg, e.keys.NextField):
			e.move(1)
			return e, nil
		case key.Matches(msg, e.keys.PrevField):
			e.move(-1)
			return e, nil
		}

		before := e.inputs[e.focus].Value()
		var cmd tea.Cmd
		e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
		if e.inputs[e.focus].Value() != before {
			e.errors.Clear(e.focus)
		}
		return e, cmd
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd
}

func (e editor) View(theme Theme, width int) string {
	styles := theme.Styles()
	labelWidth := 16

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(e.labels.Heading))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(min(width, 60), 10))))
	b.WriteString("\n\n")

	for _, f := range form.AllFields {
		label := lipgloss.NewStyle().Width(labelWidth).Render(f.Label())
		if f == e.focus {
			label = styles.AccentText.Bold(true).Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(e.inputs[f].View())
		b.WriteString("\n")
		if msg := e.errors.Message(f); msg != "" {
			b.WriteString(strings.Repeat(" ", labelWidth))
			b.WriteString(styles.DangerText.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.busy {
		b.WriteString(styles.AccentText.Render(e.spinner.View()))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(e.labels.Busy))
		return b.String()
	}

	hints := []string{"enter: " + e.labels.Submit, "tab: Next field"}
	if e.labels.ShowCancel {
		hints = append(hints, "esc: Cancel")
	}
	b.WriteString(styles.FaintText.Render(strings.Join(hints, "  •  ")))
	return b.String()
}

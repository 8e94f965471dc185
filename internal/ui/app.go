package ui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   catalog.Catalog
	Prefs     *prefs.Store
	ThemeName string
	LogPath   string
	APIURL    string
	Logger    *slog.Logger
	// Now overrides the clock used for validation and notices.
	Now func() time.Time
}

// Model is the root bubbletea model. It owns the router and the overlays;
// every screen lives in a view.
type Model struct {
	env     *env
	prefs   *prefs.Store
	theme   Theme
	apiURL  string
	logPath string

	width  int
	height int
	ready  bool

	route  Route
	active view
	token  int

	showHelp bool
	activity *activityOverlay
}

// New builds the root model showing the collection.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	m := Model{
		env: &env{
			ctx:     ctx,
			catalog: opts.Catalog,
			keys:    DefaultKeyMap(),
			logger:  logger,
			now:     now,
			after:   afterTick,
		},
		prefs:   opts.Prefs,
		theme:   GetTheme(themeName),
		apiURL:  opts.APIURL,
		logPath: opts.LogPath,
	}
	m.open(Route{Kind: RouteCollection})
	return m
}

// open replaces the active view. The new token makes results addressed to
// the previous view fall on the floor.
func (m *Model) open(r Route) tea.Cmd {
	m.token++
	m.route = r
	switch r.Kind {
	case RouteAdd:
		m.active = newCreateView(m.env, m.token)
	case RouteEdit:
		m.active = newUpdateView(m.env, m.token, r.ID)
	default:
		m.active = newCollectionView(m.env, m.token, r.Handoff)
	}
	m.env.logger.Debug("navigate", "path", r.Path())
	return m.active.Init()
}

// Route returns the current route.
func (m Model) Route() Route { return m.route }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.active.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.activity != nil {
			m.activity.resize(m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case navigateMsg:
		return m, m.open(msg.route)

	case activityMsg:
		if m.activity != nil {
			cmd, _ := m.activity.Update(msg, m.env.keys, m.theme)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.env.keys

	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.activity != nil {
		cmd, closed := m.activity.Update(msg, keys, m.theme)
		if closed {
			m.activity = nil
		}
		return m, cmd
	}

	if !m.active.Capturing() {
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, keys.CycleTheme):
			m.cycleTheme()
			return m, nil
		case key.Matches(msg, keys.Activity):
			m.activity = newActivityOverlay(m.logPath, m.width, m.height)
			return m, readActivity(m.logPath)
		}
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefs == nil {
		return
	}
	if err := m.prefs.Save(prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.env.logger.Warn("save prefs failed", "error", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.activity != nil {
		return m.activity.View(m.theme, m.width, m.height)
	}
	return m.renderHeader() + "\n" +
		m.renderCommandBar() + "\n" +
		m.active.View(m.theme, m.width, max(m.height-2, 1))
}

// Run starts the program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(contextOrBackground(opts.Context)))
	_, err := p.Run()
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/layout"
	"github.com/rohanod/busDisplay/internal/prefs"
	"github.com/rohanod/busDisplay/internal/state"
)

// frameEvery is the render cadence. The board redraws around thirty times a
// second so the spinner and clock stay fluid; data changes only when the
// background poller writes the store.
const frameEvery = time.Second / 30

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Config    config.Config
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	cfg       config.Config
	prefsPath string

	theme  Theme
	styles Styles
	spin   spinner.Model

	width  int
	height int
	ready  bool

	view state.View
	geo  layout.Geometry
	now  time.Time
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := GetTheme(opts.ThemeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	styles := theme.Styles()
	return Model{
		ctx:       ctx,
		store:     opts.Store,
		cfg:       opts.Config,
		prefsPath: prefsPath,
		theme:     theme,
		styles:    styles,
		spin:      newSpinner(styles),
		now:       time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, frameCmd(), m.spin.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.geo = layout.Compute(len(m.view.Stops), m.width, m.height, m.cfg)
		return m, nil

	case frameMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.now = time.Time(msg)
		if m.store != nil {
			stops := len(m.view.Stops)
			m.view = m.store.View()
			if len(m.view.Stops) != stops && m.ready {
				m.geo = layout.Compute(len(m.view.Stops), m.width, m.height, m.cfg)
			}
		}
		return m, frameCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.view.Phase == state.Loading {
		return renderLoading(m.width, m.height, m.spin.View(), m.styles)
	}
	return renderBoard(m.view, m.geo, m.cfg, m.now, m.styles, m.width, m.height)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "ctrl+c":
		return m, tea.Quit

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.spin.Style = m.styles.Spinner
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil
	}
	return m, nil
}

// Messages

type frameMsg time.Time

// Commands

func frameCmd() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package tui is the interactive mood dashboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/analytics"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/render"
	"github.com/julianstephens/moodlit/internal/tracker"
)

// Options configures a Model
type Options struct {
	// Now reads the clock; defaults to time.Now
	Now func() time.Time
	// BeforeReset runs before history is cleared, e.g. to take a backup
	BeforeReset func()
}

type Model struct {
	tracker     *tracker.Tracker
	now         func() time.Time
	beforeReset func()

	state    constants.SessionState
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	snapshot analytics.Snapshot

	form      *huh.Form
	selected  string
	confirmed bool

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(tr *tracker.Tracker, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := Model{
		tracker:     tr,
		now:         opts.Now,
		beforeReset: opts.BeforeReset,
		state:       constants.StateDashboard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		viewport:    viewport.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes every view against one reading of the clock
func (m *Model) refresh() {
	m.snapshot = m.tracker.Snapshot(m.now())
	m.viewport.SetContent(m.dashboard())
}

func (m Model) dashboard() string {
	return render.Dashboard(m.snapshot, m.tracker.History())
}

func (m Model) ShortHelp() []key.Binding {
	if m.state != constants.StateDashboard {
		return []key.Binding{m.keys.Back}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state != constants.StateDashboard {
		return [][]key.Binding{{m.keys.Back}}
	}
	return m.keys.FullHelp()
}

// State returns the current screen
func (m Model) State() constants.SessionState {
	return m.state
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-helpHeight, 1)
		m.viewport.SetContent(m.dashboard())
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil
	}

	if m.state != constants.StateDashboard && m.form != nil {
		cmd := m.handleForm(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Log):
			return m, m.openLogForm()
		case key.Matches(msg, m.keys.Reset):
			return m, m.openResetForm()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/constants"
)

// rows reserved below the dashboard for status and help
const helpHeight = 3

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateLogMood:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmReset:
		content = m.viewConfirmReset()
	default:
		content = m.viewDashboard()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusStyle.Render(m.status),
		m.help.View(m),
	)
}

func (m Model) viewDashboard() string {
	// before the first WindowSizeMsg the viewport has no height
	if m.viewport.Height == 0 {
		return docStyle.Render(m.dashboard())
	}
	return m.viewport.View()
}

func (m Model) viewConfirmReset() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		dangerStyle.Render("Reset"),
		"",
		m.form.View(),
	)
	if m.width == 0 {
		return docStyle.Render(body)
	}
	return lipgloss.Place(m.width, max(m.height-helpHeight, 1),
		lipgloss.Center, lipgloss.Center,
		body,
	)
}

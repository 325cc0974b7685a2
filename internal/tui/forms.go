package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/catalog"
	"github.com/julianstephens/moodlit/internal/constants"
)

// NewMoodForm builds the mood picker, preselecting today's mood if logged
func NewMoodForm(value *string) *huh.Form {
	var opts []huh.Option[string]
	for _, m := range catalog.All() {
		opts = append(opts, huh.NewOption(m.Emoji+" "+m.Label, m.Label))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling today?").
				Options(opts...).
				Value(value),
		),
	)
}

// NewResetForm builds the reset confirmation
func NewResetForm(value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all mood history?").
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(value),
		),
	)
}

func (m *Model) openLogForm() tea.Cmd {
	m.selected = ""
	if m.snapshot.TodayRecord != nil {
		m.selected = m.snapshot.TodayRecord.Label
	}
	m.form = NewMoodForm(&m.selected)
	m.state = constants.StateLogMood
	return m.form.Init()
}

func (m *Model) openResetForm() tea.Cmd {
	m.confirmed = false
	m.form = NewResetForm(&m.confirmed)
	m.state = constants.StateConfirmReset
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = constants.StateDashboard
}

// handleForm forwards msg to the active form and acts once it completes
func (m *Model) handleForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateLogMood:
			m.logMood(m.selected)
		case constants.StateConfirmReset:
			if m.confirmed {
				m.reset()
			}
		}
		m.closeForm()
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}

func (m *Model) logMood(label string) {
	rec, replaced, err := m.tracker.LogMood(label, m.now())
	if err != nil {
		m.status = err.Error()
		return
	}
	verb := "Logged"
	if replaced {
		verb = "Updated"
	}
	m.status = fmt.Sprintf("%s %s %s for today", verb, rec.Emoji, rec.Label)
	m.refresh()
}

func (m *Model) reset() {
	if m.beforeReset != nil {
		m.beforeReset()
	}
	m.tracker.Reset()
	m.status = "All mood history deleted"
	m.refresh()
}

package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// the dashboard writes, so it holds the lock for the whole session
	return ctx.WithLock(func() error {
		model := tui.NewModel(ctx.Tracker, tui.Options{
			Now:         ctx.Now,
			BeforeReset: ctx.PerformAutomaticBackup,
		})
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("dashboard failed: %w", err)
		}
		return nil
	})
}

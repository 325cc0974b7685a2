// Package moods holds the commands that record and report moods.
package moods

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/cli"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/render"
	"github.com/julianstephens/moodlit/internal/tui"
)

type LogCmd struct {
	Mood string `arg:"" optional:"" help:"Mood label (case-insensitive) or emoji. Prompts when omitted."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if c.Mood == "" {
		if snap := ctx.Tracker.Snapshot(ctx.Now()); snap.TodayRecord != nil {
			c.Mood = snap.TodayRecord.Label
		}
		if err := tui.NewMoodForm(&c.Mood).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return apperrors.ErrAborted
			}
			return err
		}
	}

	return ctx.WithLock(func() error {
		now := ctx.Now()
		rec, replaced, err := ctx.Tracker.LogMood(c.Mood, now)
		if err != nil {
			return err
		}
		verb := "Logged"
		if replaced {
			verb = "Updated"
		}
		ctx.Printf("✓ %s %s %s for %s\n", verb, rec.Emoji, rec.Label, now.Format("Mon Jan 2"))
		ctx.Println(render.Streak(ctx.Tracker.Snapshot(now)))
		return nil
	})
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		if err := tui.NewResetForm(&confirmed).Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			ctx.Println("Reset cancelled")
			return nil
		}
	}

	return ctx.WithLock(func() error {
		n := len(ctx.Tracker.History())
		ctx.PerformAutomaticBackup()
		ctx.Tracker.Reset()
		ctx.Printf("✓ Deleted %d %s\n", n, plural(n, "entry", "entries"))
		return nil
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatCount is used by commands that report how many days they touched
func formatCount(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, "day", "days"))
}

package moods

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/render"
)

type StatsCmd struct {
	JSON bool `help:"Print the snapshot as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	snap := ctx.Tracker.Snapshot(ctx.Now())
	if c.JSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode stats: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}
	ctx.Println(render.Dashboard(snap, ctx.Tracker.History()))
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	ctx.Println(render.Streak(ctx.Tracker.Snapshot(ctx.Now())))
	return nil
}

type TrendCmd struct{}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	ctx.Println(render.Trend(ctx.Tracker.Snapshot(ctx.Now()).Trend))
	return nil
}

type FreqCmd struct{}

func (c *FreqCmd) Run(ctx *cli.Context) error {
	ctx.Println(render.Frequency(ctx.Tracker.Snapshot(ctx.Now()).Frequency))
	return nil
}

type HeatmapCmd struct{}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	snap := ctx.Tracker.Snapshot(ctx.Now())
	h := ctx.Tracker.History()
	ctx.Println(render.Heatmap(snap.Grid, snap.Months, h, snap.Today))
	ctx.Println(render.Coverage(snap.Grid, h))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	ctx.Println(render.Moods())
	return nil
}

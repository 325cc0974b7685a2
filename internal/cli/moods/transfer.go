package moods

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/render"
	"github.com/julianstephens/moodlit/internal/utils"
)

type ExportCmd struct {
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := json.MarshalIndent(ctx.Tracker.History(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if c.Output == "" {
		ctx.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %s to %s\n", formatCount(len(ctx.Tracker.History())), c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON export to import."`
	Yes  bool   `short:"y" help:"Overwrite days that are already logged without asking."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	var incoming models.History
	if err := json.Unmarshal(data, &incoming); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	h := models.NewHistory()
	skipped := 0
	for key, rec := range incoming {
		if !utils.IsDateKey(key) {
			logger.Warn("Skipping malformed date key", "key", key)
			skipped++
			continue
		}
		h[key] = rec
	}

	current := ctx.Tracker.History()
	conflicts := 0
	for key := range h {
		if current.Has(key) {
			conflicts++
		}
	}
	if conflicts > 0 && !c.Yes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Overwrite %s already logged?", formatCount(conflicts))).
			Value(&confirmed)
		if err := prompt.Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			ctx.Println("Import cancelled")
			return nil
		}
	}

	return ctx.WithLock(func() error {
		ctx.PerformAutomaticBackup()
		n := ctx.Tracker.Import(h)
		ctx.Printf("✓ Imported %s\n", formatCount(n))
		if skipped > 0 {
			ctx.Println(render.Warning(fmt.Sprintf("skipped %d malformed %s", skipped, plural(skipped, "key", "keys"))))
		}
		return nil
	})
}

type SeedCmd struct {
	Days int   `default:"60" help:"How many past days to fill."`
	Seed int64 `help:"Random seed; 0 derives one from the clock."`
}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be positive, got %d", c.Days)
	}
	return ctx.WithLock(func() error {
		now := ctx.Now()
		seed := c.Seed
		if seed == 0 {
			seed = now.UnixNano()
		}
		n := ctx.Tracker.Seed(c.Days, now, rand.New(rand.NewSource(seed)))
		ctx.Printf("✓ Seeded %s\n", formatCount(n))
		return nil
	})
}

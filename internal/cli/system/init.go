// Package system holds setup, diagnostics and the TUI launcher.
package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Overwrite an existing config.toml."`
	Source string `help:"Copy history from another store: a JSON file, a .db file or a PostgreSQL connection string."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	cfgPath := filepath.Join(ctx.Config.Dir, constants.ConfigFileName)
	_, statErr := os.Stat(cfgPath)
	switch {
	case errors.Is(statErr, os.ErrNotExist) || c.Force:
		if err := ctx.Config.Save(); err != nil {
			return err
		}
		ctx.Printf("Wrote config: %s\n", cfgPath)
	case statErr != nil:
		return fmt.Errorf("failed to access config: %w", statErr)
	default:
		ctx.Printf("Config exists: %s (use --force to overwrite)\n", cfgPath)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", ctx.Config.Storage, ctx.Store.GetConfigPath())

	if c.Source == "" {
		return nil
	}
	if sameLocation(c.Source, ctx.Store.GetConfigPath()) {
		return fmt.Errorf("source and destination are the same: %s", c.Source)
	}

	return ctx.WithLock(func() error {
		src, err := storage.OpenSource(c.Source)
		if err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
		defer func() {
			if err := src.Close(); err != nil {
				logger.Warn("Failed to close source store", "error", err)
			}
		}()

		ctx.Printf("Copying history from: %s\n", src.GetConfigPath())
		n, err := storage.Copy(ctx.Store, src)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Tracker.Load()
		ctx.Printf("✓ Copied %d days\n", n)
		return nil
	})
}

func sameLocation(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

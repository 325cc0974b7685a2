// Package backups exposes the backup manager on the command line.
package backups

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/cli"
)

var errNotFileStore = errors.New("backups are only available for json and sqlite storage")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if !ctx.IsFileStore() {
		return nil, errNotFileStore
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		ctx.Println("No backups found.")
		return nil
	}

	ctx.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for i, b := range backups {
		ctx.Printf("%2d. %s  %s  (%s)\n", i+1, filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04:05"), formatSize(b.Size))
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" optional:"" help:"Backup file name or path. Defaults to the newest backup."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	path := c.Backup
	switch {
	case path == "":
		backups, err := mgr.ListBackups()
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		if len(backups) == 0 {
			return errors.New("no backups to restore")
		}
		path = backups[0].Path
	case filepath.Base(path) == path:
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	return ctx.WithLock(func() error {
		// the store must not hold the file open while it is replaced
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
		previous, err := mgr.RestoreBackup(path)
		if err != nil {
			return err
		}
		ctx.Tracker.Load()

		ctx.Printf("✓ Restored %s (%d logged)\n", filepath.Base(path), len(ctx.Tracker.History()))
		if previous != "" {
			ctx.Printf("  Previous data saved as %s\n", filepath.Base(previous))
		}
		return nil
	})
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

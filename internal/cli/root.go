// Package cli holds the state shared by every moodlit command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/lockfile"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/tracker"
	"github.com/julianstephens/moodlit/internal/utils"
)

type Context struct {
	Config  config.Config
	Store   storage.Provider
	Tracker *tracker.Tracker

	// Out receives command output; nil means stdout
	Out io.Writer
	// Clock overrides the configured timezone clock in tests
	Clock func() time.Time
}

// Now reads the clock once in the configured timezone
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	now, err := utils.NowInTimezone(c.Config.Timezone)
	if err != nil {
		logger.Warn("Falling back to local time", "error", err)
		return time.Now()
	}
	return now
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// WithLock runs fn while holding the writer lock in the config directory.
// The tracker is reloaded once the lock is held so fn never saves a history
// read before another process's write.
func (c *Context) WithLock(fn func() error) error {
	lock, err := lockfile.Acquire(c.Config.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lock", "path", lock.Path(), "error", err)
		}
	}()
	if c.Tracker != nil {
		c.Tracker.Load()
	}
	return fn()
}

// IsFileStore reports whether the store lives in a local file that can be backed up
func (c *Context) IsFileStore() bool {
	return c.Config.Storage != constants.StoragePostgres
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup || !c.IsFileStore() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		if errors.Is(err, backup.ErrNoStore) {
			logger.Debug("Nothing to back up yet", "path", c.Store.GetConfigPath())
			return
		}
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

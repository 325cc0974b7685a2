// Package lockfile guards the mood store against concurrent writers with a
// PID file in the config directory.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
)

var findProcessFunc = ps.FindProcess

// Lock is a held writer lock
type Lock struct {
	path string
	pid  int
}

// Acquire takes the writer lock in dir. A lock held by a live moodlit
// process yields errors.ErrLocked; a stale or malformed lock is taken over.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)
	pid := os.Getpid()

	for attempt := 0; attempt <= constants.LockMaxRetries; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(pid))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired lock", "path", path, "pid", pid)
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, alive := holderAlive(path)
		if alive {
			return nil, fmt.Errorf("%w (pid %d)", apperrors.ErrLocked, holder)
		}

		logger.Warn("Removing stale lockfile", "path", path, "pid", holder)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
		time.Sleep(constants.LockRetryDelay)
	}
	return nil, fmt.Errorf("%w: could not acquire %s", apperrors.ErrLocked, path)
}

// holderAlive reads the PID in the lockfile and reports whether it belongs
// to a running moodlit process.
func holderAlive(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	return pid, strings.HasPrefix(process.Executable(), constants.AppName)
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(string(content)) != strconv.Itoa(l.pid) {
		logger.Warn("Lockfile taken over by another process, leaving it", "path", l.path)
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lockfile location
func (l *Lock) Path() string {
	return l.path
}

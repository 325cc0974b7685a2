package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int { return m.pid }
func (m *mockProcess) PPid() int { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func mockFindProcess(t *testing.T, fn func(pid int) (ps.Process, error)) {
	old := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = old })
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	content, err := os.ReadFile(filepath.Join(dir, constants.LockfileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lockfile content = %q", content)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("lockfile still present after Release")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	mockFindProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "moodlit"}, nil
	})
	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte("424242"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(dir)
	if !errors.Is(err, apperrors.ErrLocked) {
		t.Errorf("Acquire() error = %v, want ErrLocked", err)
	}
}

func TestAcquireTakesOverStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		process ps.Process
	}{
		{"dead process", "424242", nil},
		{"pid reused by another program", "424242", &mockProcess{pid: 424242, executable: "bash"}},
		{"malformed", "not-a-pid", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			mockFindProcess(t, func(pid int) (ps.Process, error) {
				return tt.process, nil
			})
			if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			lock, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			defer lock.Release()
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lock.Path(), []byte("999999"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Error("Release() removed a lock owned by another process")
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/moodlit/internal/logger"
)

var (
	// ErrUnknownMood is returned when input does not name a catalog mood
	ErrUnknownMood = stderrors.New("unknown mood")
	// ErrLocked is returned when another moodlit process holds the writer lock
	ErrLocked = stderrors.New("history is locked by another moodlit process")
	// ErrAborted is returned when the user declines an interactive prompt
	ErrAborted = stderrors.New("aborted")
)

// Exit codes
const (
	ExitFailure = 1
	ExitUsage   = 2
	ExitLocked  = 3
)

// ExitCode maps an error to the process exit code used by the CLI
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, ErrUnknownMood):
		return ExitUsage
	case stderrors.Is(err, ErrLocked):
		return ExitLocked
	default:
		return ExitFailure
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits with the code ExitCode assigns to it
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}

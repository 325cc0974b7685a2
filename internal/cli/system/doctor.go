package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/catalog"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/lockfile"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// ErrUnhealthy is returned when at least one doctor check fails
var ErrUnhealthy = errors.New("doctor found problems")

// schemaValidator is implemented by the SQL stores
type schemaValidator interface {
	ValidateSchema() error
}

type DoctorCmd struct {
	Fix bool `help:"Apply pending migrations and take over stale locks."`
}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkip
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, result checkResult, detail string) {
		switch result {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n", name)
			hasError = true
		case checkSkip:
			ctx.Printf("⊘ %s: SKIPPED\n", name)
		}
		if detail != "" {
			ctx.Printf("   %s\n", detail)
		}
	}

	if err := ctx.Config.Validate(); err != nil {
		report("Configuration", checkFail, err.Error())
	} else {
		report("Configuration", checkOK, "")
	}

	if path := logger.Path(); path != "" {
		report("Log file", checkOK, path)
	}

	if _, err := utils.NowInTimezone(ctx.Config.Timezone); err != nil {
		report("Clock/timezone", checkFail, err.Error())
	} else {
		report("Clock/timezone", checkOK, "")
	}

	cmd.checkSchema(ctx, report)

	h, err := ctx.Store.Load()
	if err != nil {
		report("Store readable", checkFail, err.Error())
		report("Data integrity", checkSkip, "store not readable")
	} else {
		report("Store readable", checkOK, fmt.Sprintf("%d days in %s", len(h), ctx.Store.GetConfigPath()))
		if problems := dataProblems(h); len(problems) > 0 {
			for _, p := range problems {
				report("Data integrity", checkWarn, p)
			}
		} else {
			report("Data integrity", checkOK, "")
		}
	}

	cmd.checkLock(ctx, report)
	checkBackups(ctx, report)

	if ctx.Config.Storage == constants.StoragePostgres {
		if keyring.IsAvailable() {
			report("OS keyring", checkOK, "")
		} else {
			report("OS keyring", checkWarn, "keyring unavailable; use "+constants.DBConnectionEnv+" or .pgpass")
		}
	}

	ctx.Println()
	if hasError {
		return ErrUnhealthy
	}
	ctx.Println("All checks passed.")
	return nil
}

func (cmd *DoctorCmd) checkSchema(ctx *cli.Context, report func(string, checkResult, string)) {
	v, ok := ctx.Store.(schemaValidator)
	if !ok {
		report("Schema version", checkSkip, "json storage has no schema")
		return
	}
	err := v.ValidateSchema()
	if err == nil {
		report("Schema version", checkOK, "")
		return
	}
	if !cmd.Fix {
		report("Schema version", checkFail, err.Error())
		return
	}
	// reopen so Init runs the migrations instead of trusting an earlier pass
	if err := ctx.Store.Close(); err != nil {
		report("Schema version", checkFail, err.Error())
		return
	}
	if err := ctx.Store.Init(); err != nil {
		report("Schema version", checkFail, "migration failed: "+err.Error())
		return
	}
	if err := v.ValidateSchema(); err != nil {
		report("Schema version", checkFail, err.Error())
		return
	}
	report("Schema version", checkOK, "migrations applied")
}

func (cmd *DoctorCmd) checkLock(ctx *cli.Context, report func(string, checkResult, string)) {
	if !cmd.Fix {
		// probing with Acquire would take over a stale lock
		report("Writer lock", checkSkip, "run with --fix to clear stale locks")
		return
	}
	lock, err := lockfile.Acquire(ctx.Config.Dir)
	if errors.Is(err, apperrors.ErrLocked) {
		report("Writer lock", checkWarn, err.Error())
		return
	}
	if err != nil {
		report("Writer lock", checkFail, err.Error())
		return
	}
	if err := lock.Release(); err != nil {
		report("Writer lock", checkFail, err.Error())
		return
	}
	report("Writer lock", checkOK, "")
}

func checkBackups(ctx *cli.Context, report func(string, checkResult, string)) {
	if !ctx.IsFileStore() {
		report("Backups present", checkSkip, "postgres storage is backed up by the server")
		return
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	switch {
	case err != nil:
		report("Backups present", checkWarn, err.Error())
	case len(backups) == 0:
		report("Backups present", checkWarn, "no backups yet; run 'moodlit backup create'")
	default:
		report("Backups present", checkOK, fmt.Sprintf("%d, newest %s", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04")))
	}
}

// dataProblems lists records the analytics will ignore or misread
func dataProblems(h models.History) []string {
	var problems []string
	for _, key := range h.Keys() {
		rec := h[key]
		if !utils.IsDateKey(key) {
			problems = append(problems, fmt.Sprintf("malformed date key %q is ignored", key))
			continue
		}
		if _, ok := catalog.Lookup(rec.Label); !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown mood %q counts as neutral", key, rec.Label))
		}
	}
	return problems
}

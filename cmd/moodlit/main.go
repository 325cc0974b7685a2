package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/cli/backups"
	"github.com/julianstephens/moodlit/internal/cli/moods"
	"github.com/julianstephens/moodlit/internal/cli/system"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config directory holding config.toml, logs and the default stores." type:"string" default:"${config_dir}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Tui     system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Log     moods.LogCmd     `cmd:"" help:"Log today's mood."`
	Stats   moods.StatsCmd   `cmd:"" help:"Show every view at once."`
	Streak  moods.StreakCmd  `cmd:"" help:"Show the current and best streak."`
	Trend   moods.TrendCmd   `cmd:"" help:"Compare this week with last week."`
	Freq    moods.FreqCmd    `cmd:"" help:"Rank moods over the last 30 days."`
	Heatmap moods.HeatmapCmd `cmd:"" help:"Show the 12-week heatmap."`
	Moods   moods.ListCmd    `cmd:"" help:"List the moods you can log."`
	Export  moods.ExportCmd  `cmd:"" help:"Export history as JSON."`
	Import  moods.ImportCmd  `cmd:"" help:"Merge a JSON export into history."`
	Reset   moods.ResetCmd   `cmd:"" help:"Delete all mood history."`
	Seed    moods.SeedCmd    `cmd:"" help:"Fill past days with random moods for a demo."`

	Init    system.InitCmd    `cmd:"" help:"Write config.toml and initialize storage."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

// commands that inspect or prepare the store themselves
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Log one mood a day and watch the streaks, trends and heatmap."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.Dir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Loaded config", "dir", cfg.Dir, "storage", cfg.Storage)

	command := strings.Fields(ctx.Command())[0]
	var store storage.Provider
	if command == "keyring" {
		// keyring commands must work before any store is reachable
		store = storage.NewJSONStore(cfg.StorePath())
	} else if store, err = storage.Open(cfg); err != nil {
		apperrors.Fatal(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	tr := tracker.New(store)
	if !skipLoad[command] {
		tr.Load()
	}

	appCtx := &cli.Context{
		Config:  cfg,
		Store:   store,
		Tracker: tr,
	}
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

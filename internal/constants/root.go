package constants

import "time"

// TrendVerdict identifies the outcome of the week-over-week comparison
type TrendVerdict string

// StorageKind selects the persistence backend
type StorageKind string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "moodlit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/moodlit"
	ConfigFileName     = "config.toml"
	Version            = "v0.3.0"

	// DateFormat is the canonical date-key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Analytic windows
	StreakScanCap     = 365
	WeekDays          = 7
	FrequencyWindow   = 30
	GridRows          = 7
	GridCols          = 12
	GridDays          = GridRows * GridCols
	TrendNoiseBand    = 0.5
	NeutralPositivity = 5
	MinBarWidth       = 10.0

	// Storage constants
	StorageJSON     StorageKind = "json"
	StorageSQLite   StorageKind = "sqlite"
	StoragePostgres StorageKind = "postgres"

	DefaultStorage    = StorageJSON
	JSONFileName      = "moods.json"
	SQLiteFileName    = "moodlit.db"
	DBConnectionEnv   = "MOODLIT_DB_CONNECTION"
	PostgresSchema    = AppName
	DefaultAutoBackup = true

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "moodlit-"

	// Lockfile constants
	LockfileName     = "moodlit.lock"
	LockRetryDelay   = 100 * time.Millisecond
	LockMaxRetries   = 3
	SeedDefaultDays  = 60
	SeedSkipPercent  = 15
	BarLength        = 30
	HeatmapCellWidth = 2

	// Trend verdicts
	TrendNoData        TrendVerdict = "no_data"
	TrendEmptyCurrent  TrendVerdict = "week_empty_current"
	TrendEmptyPrevious TrendVerdict = "week_empty_previous"
	TrendUp            TrendVerdict = "upward"
	TrendDown          TrendVerdict = "downward"
	TrendSteady        TrendVerdict = "steady"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateLogMood
	StateConfirmReset
)

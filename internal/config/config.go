// Package config loads moodlit settings from defaults, an optional TOML file
// and MOODLIT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/utils"
)

// Config holds application settings
type Config struct {
	Storage    constants.StorageKind `toml:"storage" env:"MOODLIT_STORAGE"`         // json, sqlite or postgres
	Path       string                `toml:"path" env:"MOODLIT_PATH"`               // file path, or connection string for postgres
	Debug      bool                  `toml:"debug" env:"MOODLIT_DEBUG"`             // debug logging to stderr
	AutoBackup bool                  `toml:"auto_backup" env:"MOODLIT_AUTO_BACKUP"` // back up before reset
	Timezone   string                `toml:"timezone" env:"MOODLIT_TIMEZONE"`       // location used to read "now"

	// Dir is the directory holding the config file, logs, lockfile and default stores
	Dir string `toml:"-" env:"MOODLIT_DIR"`
}

// Default returns the built-in configuration rooted at dir
func Default(dir string) Config {
	return Config{
		Storage:    constants.DefaultStorage,
		Debug:      false,
		AutoBackup: constants.DefaultAutoBackup,
		Timezone:   "Local",
		Dir:        dir,
	}
}

// Load builds the configuration. dir is the config directory (a leading ~ is
// expanded); the TOML file inside it is optional.
func Load(dir string) (Config, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	path := filepath.Join(dir, constants.ConfigFileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Dir, err = ExpandHome(cfg.Dir); err != nil {
		return Config{}, err
	}
	if cfg.Path, err = ExpandHome(cfg.Path); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for unsupported values
func (c Config) Validate() error {
	switch c.Storage {
	case constants.StorageJSON, constants.StorageSQLite, constants.StoragePostgres:
	default:
		return fmt.Errorf("unsupported storage %q (expected json, sqlite or postgres)", c.Storage)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// StorePath returns the configured store location, defaulting to a file in Dir
func (c Config) StorePath() string {
	if c.Path != "" {
		return c.Path
	}
	switch c.Storage {
	case constants.StorageSQLite:
		return filepath.Join(c.Dir, constants.SQLiteFileName)
	case constants.StoragePostgres:
		return ""
	default:
		return filepath.Join(c.Dir, constants.JSONFileName)
	}
}

// Save writes the configuration to Dir/config.toml
func (c Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(filepath.Join(c.Dir, constants.ConfigFileName), data, 0600)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

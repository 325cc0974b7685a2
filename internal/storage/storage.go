// Package storage persists the mood history. The JSON file store is the
// default; SQLite and PostgreSQL stores live in subpackages.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage/postgres"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

// ErrNoConnection is returned when postgres storage is selected but no
// connection string can be found.
var ErrNoConnection = errors.New("no PostgreSQL connection string configured")

// Open builds the provider selected by cfg. It does not touch the store.
func Open(cfg config.Config) (Provider, error) {
	switch cfg.Storage {
	case constants.StorageSQLite:
		return sqlite.NewStore(cfg.StorePath()), nil
	case constants.StoragePostgres:
		connStr, err := ResolveConnString(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	case constants.StorageJSON, "":
		return NewJSONStore(cfg.StorePath()), nil
	default:
		return nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
}

// ResolveConnString finds the PostgreSQL connection string. A string in the
// config file must not carry a password; the environment and the OS keyring
// may.
func ResolveConnString(cfg config.Config) (string, error) {
	if cfg.Path != "" {
		if _, err := postgres.ValidateConnString(cfg.Path); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("%w: store it with 'moodlit keyring set' or %s instead", err, constants.DBConnectionEnv)
			}
			return "", err
		}
		return cfg.Path, nil
	}

	if connStr := os.Getenv(constants.DBConnectionEnv); connStr != "" {
		logger.Debug("Using connection string from environment", "var", constants.DBConnectionEnv)
		return connStr, nil
	}

	connStr, err := keyring.GetConnectionString()
	if err == nil {
		logger.Debug("Using connection string from OS keyring")
		return connStr, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("Keyring lookup failed", "error", err)
	}
	return "", fmt.Errorf("%w: set path in config.toml, %s, or run 'moodlit keyring set'", ErrNoConnection, constants.DBConnectionEnv)
}

// OpenSource builds a provider for a store given only by its location: a
// PostgreSQL connection string, a .db SQLite file, or a JSON file.
func OpenSource(location string) (Provider, error) {
	switch {
	case postgres.IsConnString(location):
		if _, err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case filepath.Ext(location) == ".db":
		return sqlite.NewStore(location), nil
	default:
		return NewJSONStore(location), nil
	}
}

// Copy replaces the contents of dst with the history held by src
func Copy(dst, src Provider) (int, error) {
	h, err := src.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load source %s: %w", src.GetConfigPath(), err)
	}
	if err := dst.Save(h); err != nil {
		return 0, fmt.Errorf("failed to save to %s: %w", dst.GetConfigPath(), err)
	}
	return len(h), nil
}

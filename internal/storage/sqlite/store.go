package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/migration"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/migrations"
)

type Store struct {
	path     string
	db       *sql.DB
	migrated bool
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init opens (creating if needed) the database and applies pending migrations
func (s *Store) Init() error {
	if s.migrated {
		return nil
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.migrated = true
	return nil
}

func (s *Store) open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection serializes writers within the process
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *Store) Load() (models.History, error) {
	if !s.migrated {
		if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			return models.NewHistory(), nil
		}
		if err := s.Init(); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query("SELECT day, emoji, label, color, logged_at FROM moods")
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	h := models.NewHistory()
	for rows.Next() {
		var day, loggedAt string
		var rec models.MoodRecord
		if err := rows.Scan(&day, &rec.Emoji, &rec.Label, &rec.Color, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, loggedAt); err != nil {
			logger.Warn("Unparseable logged_at, keeping record", "day", day, "value", loggedAt)
		}
		h[day] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moods: %w", err)
	}
	return h, nil
}

// Save makes the table match h exactly. Existing rows keep their ids.
func (s *Store) Save(h models.History) error {
	if err := s.Init(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := existingDays(tx)
	if err != nil {
		return err
	}
	for _, day := range existing {
		if h.Has(day) {
			continue
		}
		if _, err := tx.Exec("DELETE FROM moods WHERE day = ?", day); err != nil {
			return fmt.Errorf("failed to delete mood %s: %w", day, err)
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO moods (id, day, emoji, label, color, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			emoji = excluded.emoji,
			label = excluded.label,
			color = excluded.color,
			logged_at = excluded.logged_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, day := range h.Keys() {
		rec := h[day]
		loggedAt := rec.Timestamp.Format(time.RFC3339Nano)
		if _, err := stmt.Exec(uuid.New().String(), day, rec.Emoji, rec.Label, rec.Color, loggedAt); err != nil {
			return fmt.Errorf("failed to save mood %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func existingDays(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query("SELECT day FROM moods")
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// Clear deletes every record in one statement
func (s *Store) Clear() error {
	if !s.migrated {
		if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err := s.Init(); err != nil {
			return err
		}
	}
	if _, err := s.db.Exec("DELETE FROM moods"); err != nil {
		return fmt.Errorf("failed to clear moods: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		s.migrated = false
		return err
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DialectSQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "store", s.path)
	})
	return err
}

// ValidateSchema reports whether the database schema matches this binary
// without applying migrations.
func (s *Store) ValidateSchema() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite).ValidateVersion()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, or nil before Init
func (s *Store) GetDB() *sql.DB {
	return s.db
}

package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/migration"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/migrations"
)

type Store struct {
	connStr  string
	db       *sql.DB
	migrated bool
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	if isURL(s.connStr) {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.PostgresSchema)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.PostgresSchema
	}
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// hasParam reports whether a DSN-style connection string sets key (case-insensitive)
func hasParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return true
		}
	}
	return false
}

// hasSSLMode checks both URL and DSN forms for an sslmode parameter
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasParam(connStr, "sslmode")
}

// IsConnString reports whether s looks like a PostgreSQL URI or key=value DSN
// rather than a file path.
func IsConnString(s string) bool {
	return isURL(s) || strings.Contains(s, "host=") || strings.Contains(s, "dbname=")
}

// ValidateConnString checks that connStr is a well-formed PostgreSQL URI or
// DSN and that it does not embed a password. Credentials belong in the OS
// keyring, MOODLIT_DB_CONNECTION or .pgpass.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if hasParam(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

// MaskPassword hides any password in connStr for display
func MaskPassword(connStr string) string {
	if isURL(connStr) {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		// the last @ separates user info from host
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + remaining[atIdx:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			parts[i] = kv[0] + "=****"
		}
	}
	return strings.Join(parts, " ")
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	return nil
}

// Init connects, creates the schema and applies pending migrations
func (s *Store) Init() error {
	if s.migrated {
		return nil
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(constants.PostgresSchema)); err != nil {
		s.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		s.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.migrated = true
	return nil
}

func (s *Store) Load() (models.History, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT day, emoji, label, color, logged_at FROM moods")
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	h := models.NewHistory()
	for rows.Next() {
		var day string
		var rec models.MoodRecord
		if err := rows.Scan(&day, &rec.Emoji, &rec.Label, &rec.Color, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		h[day] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moods: %w", err)
	}
	return h, nil
}

// Save makes the table match h exactly inside one transaction
func (s *Store) Save(h models.History) error {
	if err := s.Init(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	days := h.Keys()
	if _, err := tx.Exec("DELETE FROM moods WHERE NOT (day = ANY($1))", pq.Array(days)); err != nil {
		return fmt.Errorf("failed to prune moods: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO moods (id, day, emoji, label, color, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (day) DO UPDATE SET
			emoji = EXCLUDED.emoji,
			label = EXCLUDED.label,
			color = EXCLUDED.color,
			logged_at = EXCLUDED.logged_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, day := range days {
		rec := h[day]
		if _, err := stmt.Exec(uuid.New().String(), day, rec.Emoji, rec.Label, rec.Color, rec.Timestamp); err != nil {
			return fmt.Errorf("failed to save mood %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if err := s.Init(); err != nil {
		return err
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DialectPostgres)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "store", "postgres")
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectPostgres).ValidateVersion()
}

// GetConfigPath returns the connection string with any password masked
func (s *Store) GetConfigPath() string {
	return MaskPassword(s.connStr)
}

package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"002_add_note.sql": "ALTER TABLE moods ADD COLUMN note TEXT;",
		"001_init.sql":     "CREATE TABLE moods (day TEXT PRIMARY KEY);",
		"README.md":        "ignored",
	}), DialectSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}

	var logs []string
	applied, err := runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(logs) == 0 {
		t.Error("no progress messages logged")
	}

	version, _ = runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("version after migrate = %d, want 2", version)
	}
	if _, err := db.Exec("INSERT INTO moods (day, note) VALUES ('2024-01-01', 'ok')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}

	// second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil || applied != 0 {
		t.Errorf("rerun applied %d, err %v; want 0, nil", applied, err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() error = %v", err)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":   "CREATE TABLE moods (day TEXT PRIMARY KEY);",
		"002_broken.sql": "THIS IS NOT SQL;",
	}), DialectSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected failure from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := runner.GetCurrentVersion(); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"missing underscore", map[string]string{"001.sql": ""}, "invalid migration filename"},
		{"non numeric version", map[string]string{"abc_init.sql": ""}, "invalid version number"},
		{"zero version", map[string]string{"000_init.sql": ""}, "at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "", "01_b.sql": ""}, "duplicate migration version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, migrationFS(tt.files), DialectSQLite)
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadMigrationFiles() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE moods (day TEXT PRIMARY KEY);",
	}), DialectSQLite)

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for unmigrated database")
	}

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}
	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer-than-supported", err)
	}
}

func TestStatus(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":     "CREATE TABLE moods (day TEXT PRIMARY KEY);",
		"002_add_note.sql": "ALTER TABLE moods ADD COLUMN note TEXT;",
	}), DialectSQLite)

	st, err := runner.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.Current != 0 || st.Latest != 2 || len(st.Pending) != 2 {
		t.Errorf("Status() = %+v", st)
	}
	if st.Pending[1].Name != "add_note" {
		t.Errorf("pending name = %q", st.Pending[1].Name)
	}
}

func TestPlaceholder(t *testing.T) {
	if got := DialectSQLite.placeholder(2); got != "?" {
		t.Errorf("sqlite placeholder = %q", got)
	}
	if got := DialectPostgres.placeholder(2); got != "$2" {
		t.Errorf("postgres placeholder = %q", got)
	}
}

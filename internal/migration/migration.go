// Package migration applies the numbered SQL files under migrations/ to a
// SQLite or PostgreSQL database and tracks the applied version in
// schema_version.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/slotscore/internal/logger"
)

// ErrSchemaTooNew means the database was migrated by a newer release.
var ErrSchemaTooNew = errors.New("database schema is newer than this release supports")

// Dialect selects the bind-parameter syntax for the bookkeeping queries.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

func (d Dialect) bind(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status is the schema state reported by doctor.
type Status struct {
	Current int
	Latest  int
	Pending int
}

// plan is the set of migrations still to run against the current version.
type plan struct {
	current int
	latest  int
	pending []Migration
}

func (p plan) status() Status {
	return Status{Current: p.current, Latest: p.latest, Pending: len(p.pending)}
}

func (p plan) check() error {
	if p.current > p.latest {
		return fmt.Errorf("%w: version %d, latest known %d; please upgrade the application", ErrSchemaTooNew, p.current, p.latest)
	}
	return nil
}

type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

// NewRunner reads NNN_name.sql files from the root of migrationFS.
func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, fs: migrationFS, dialect: dialect}
}

func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	return err
}

// GetCurrentVersion returns 0 for a database that has never been migrated.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	switch err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return r.inTx(func(tx *sql.Tx) error { return r.writeVersion(tx, version) })
}

func (r *Runner) writeVersion(tx *sql.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	insert := fmt.Sprintf("INSERT INTO schema_version (version) VALUES (%s)", r.dialect.bind(1))
	if _, err := tx.Exec(insert, version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// inTx commits when fn succeeds and rolls back otherwise.
func (r *Runner) inTx(fn func(*sql.Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// parseFilename splits "002_categories.sql" into 2 and "categories".
func parseFilename(name string) (int, string, error) {
	prefix, label, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	return version, label, nil
}

// ReadMigrationFiles returns every migration sorted by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, label, err := parseFilename(entry.Name())
		if err != nil {
			return nil, err
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d (%s, %s)", version, other, entry.Name())
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Version: version, Name: label, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func (r *Runner) GetLatestVersion() (int, error) {
	p, err := r.buildPlan()
	return p.latest, err
}

func (r *Runner) buildPlan() (plan, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return plan{}, err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return plan{}, err
	}

	p := plan{current: current}
	for _, m := range migrations {
		p.latest = m.Version
		if m.Version > current {
			p.pending = append(p.pending, m)
		}
	}
	return p, nil
}

// ApplyMigrations runs every pending migration in its own transaction and
// returns how many were applied. logFn receives human-readable progress.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	p, err := r.buildPlan()
	if err != nil {
		return 0, err
	}
	if p.latest == 0 {
		logFn("No migration files found")
		return 0, nil
	}
	if err := p.check(); err != nil {
		return 0, err
	}
	if len(p.pending) == 0 {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", p.current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Migrating schema from version %d to %d (%d pending)", p.current, p.latest, len(p.pending)))
	start := time.Now()
	for i, m := range p.pending {
		logFn(fmt.Sprintf("  Applying migration %d: %s", m.Version, m.Name))
		if err := r.apply(m); err != nil {
			return i, err
		}
		logger.Debug("Applied migration", "dialect", r.dialect, "version", m.Version, "name", m.Name)
	}
	logFn(fmt.Sprintf("Applied %d migration(s) in %v", len(p.pending), time.Since(start).Round(time.Millisecond)))
	return len(p.pending), nil
}

func (r *Runner) apply(m Migration) error {
	err := r.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		return r.writeVersion(tx, m.Version)
	})
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	return nil
}

// ValidateVersion fails with ErrSchemaTooNew when the database is ahead of
// the embedded migrations.
func (r *Runner) ValidateVersion() error {
	p, err := r.buildPlan()
	if err != nil {
		return err
	}
	return p.check()
}

func (r *Runner) Status() (Status, error) {
	p, err := r.buildPlan()
	if err != nil {
		return Status{}, err
	}
	return p.status(), nil
}

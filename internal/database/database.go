package database

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/spyglass-osint/spyglass/internal/paths"
	"github.com/spyglass-osint/spyglass/internal/worker"
	"github.com/spyglass-osint/spyglass/internal/workspace"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added expiry index on ttls
const currentSchemaVersion = 1

// Database owns the single connection to one workspace file. No other
// component may hold a second live connection to the same file; SQLite's
// file locking backed by WAL detects external writers.
type Database struct {
	name workspace.Workspace
	db   *sql.DB
	log  *zap.SugaredLogger
}

// Establish opens a workspace database, routed through the worker facility
// so a slow first open (large migration) doesn't stall the interactive loop.
func Establish(log *zap.SugaredLogger, dataDir string, name workspace.Workspace) (*Database, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return worker.Spawn(log, "Connecting to database", func() (*Database, error) {
		return establish(log, dataDir, name)
	})
}

// EstablishQuiet is Establish without interactive notices, for background
// contexts that must not emit progress output.
func EstablishQuiet(log *zap.SugaredLogger, dataDir string, name workspace.Workspace) (*Database, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return worker.SpawnQuiet(func() (*Database, error) {
		return establish(log, dataDir, name)
	})
}

// establish resolves the file path, connects, runs migrations and applies
// the durability and integrity pragmas. Any failure aborts the open; no
// partially-initialized store is returned.
func establish(log *zap.SugaredLogger, dataDir string, name workspace.Workspace) (*Database, error) {
	path := paths.WorkspaceFile(dataDir, name.String())

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time, keep a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debugw("Database established", "workspace", name.String(), "path", path)

	return &Database{
		name: name,
		db:   db,
		log:  log,
	}, nil
}

// Name returns the workspace this database belongs to.
func (d *Database) Name() string {
	return d.name.String()
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// DB returns the underlying sql.DB. Prefer the typed operations.
func (d *Database) DB() *sql.DB {
	return d.db
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// Idempotent, runs on every open.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return runMigrations(db)
}

func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// migrateToV1 adds the expiry index for existing databases. New databases
// get the table from schema.sql; the index is separate so the sweep in
// ttl.go stays cheap on large workspaces.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ttls_expire
		ON ttls(expire)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (d *Database) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := d.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

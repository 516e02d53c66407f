package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding the telemetry log and session
// snapshots.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open connects to the SQLite database at dsn, applies recommended pragmas,
// and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init sequence counter: %w", err)
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the event repository backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// SnapshotRepo returns the snapshot repository backed by this store.
func (s *Store) SnapshotRepo() SnapshotRepo {
	return &snapshotRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user durability and speed.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// createSchema creates the event and snapshot tables. The event tables are
// append-only; rows are never updated or deleted outside of reset.
func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			final_streak INTEGER NOT NULL DEFAULT 0,
			final_avg_latency_ms INTEGER NOT NULL DEFAULT 0,
			final_hints INTEGER NOT NULL DEFAULT 0,
			total_items INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS hint_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			session_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			hint_index INTEGER NOT NULL,
			hint_text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempt_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			session_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			objective_id TEXT NOT NULL,
			mechanic TEXT NOT NULL,
			correct INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			hints_used INTEGER NOT NULL,
			misconception_id TEXT NOT NULL DEFAULT '',
			retries INTEGER NOT NULL DEFAULT 0,
			response TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS coach_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			data TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZCRAFT_DB environment variable
// 2. $XDG_DATA_HOME/quizcraft/quizcraft.db
// 3. ~/.local/share/quizcraft/quizcraft.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZCRAFT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizcraft", "quizcraft.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Package store persists the engine's durable state: the per-verse
// learning map and the learner profile. SQLite is the default backend;
// redis.go offers the same surface for hosts that already run Redis, and
// memory.go backs tests and throwaway embedding.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamdan/hifzi/internal/learner"
	"github.com/hamdan/hifzi/internal/progress"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended pragmas
// and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// VerseStates returns the per-verse state repository.
func (s *Store) VerseStates() progress.StateRepo {
	return &sqliteVerseRepo{db: s.db}
}

// Learner returns the learner profile repository.
func (s *Store) Learner() learner.Repo {
	return &sqliteLearnerRepo{db: s.db}
}

// Wipe deletes all persisted state. Used by the reset command.
func (s *Store) Wipe() error {
	for _, table := range []string{"verse_states", "learner_profile"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("wipe %s: %w", table, err)
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user performance.
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

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS verse_states (
			verse_id TEXT PRIMARY KEY,
			surah_number INTEGER NOT NULL,
			number_in_surah INTEGER NOT NULL,
			status TEXT NOT NULL,
			confidence TEXT NOT NULL,
			read_count INTEGER NOT NULL DEFAULT 0,
			test_attempts INTEGER NOT NULL DEFAULT 0,
			successful_recalls INTEGER NOT NULL DEFAULT 0,
			last_practiced_at TEXT,
			mastered_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verse_states_surah
			ON verse_states (surah_number, number_in_surah)`,
		`CREATE TABLE IF NOT EXISTS learner_profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. HIFZI_DB environment variable
// 2. $XDG_DATA_HOME/hifzi/hifzi.db
// 3. ~/.local/share/hifzi/hifzi.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("HIFZI_DB"); p != "" {
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

	p := filepath.Join(dataHome, "hifzi", "hifzi.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

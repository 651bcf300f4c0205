// Package store persists audit records in a local SQLite database. Tumour
// rows hold raw TNM tokens and the AJCC edition only — there is no stage
// column anywhere in the schema. Stage groups are recomputed from the
// stored codes on every read, so they can never drift out of sync with a
// corrected staging table.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Store wraps the SQLite handle. All access is serialized: SQLite is opened
// with a single connection and guarded by a mutex, which is plenty for a
// single-site audit workload.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	log    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open opens (creating if needed) the database at path and brings the
// schema up to date. Pass ":memory:" for an ephemeral database in tests.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{dbPath: path, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			s.log.Debug("pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	s.db = db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s.log.Debug("store opened", zap.String("path", path))
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS episodes (
			id TEXT PRIMARY KEY,
			patient_ref TEXT NOT NULL,
			hospital TEXT NOT NULL DEFAULT '',
			referral_source TEXT NOT NULL DEFAULT '',
			diagnosis_date TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'open',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tumours (
			id TEXT PRIMARY KEY,
			episode_id TEXT NOT NULL REFERENCES episodes(id) ON DELETE CASCADE,
			site TEXT NOT NULL,
			histology TEXT NOT NULL DEFAULT '',
			basis TEXT NOT NULL,
			t_code TEXT NOT NULL DEFAULT '',
			n_code TEXT NOT NULL DEFAULT '',
			m_code TEXT NOT NULL DEFAULT '',
			edition INTEGER NOT NULL DEFAULT 8,
			crm_mm REAL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS treatments (
			id TEXT PRIMARY KEY,
			episode_id TEXT NOT NULL REFERENCES episodes(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			start_date TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_episodes_patient ON episodes(patient_ref)`,
		`CREATE INDEX IF NOT EXISTS idx_tumours_episode ON tumours(episode_id)`,
		`CREATE INDEX IF NOT EXISTS idx_treatments_episode ON treatments(episode_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// now returns the canonical timestamp representation used in the schema.
func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

package store

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// migration adds a column to an existing table. Migrations are additive
// only; removing or retyping a column means a new table and a copy.
type migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations lists schema additions for databases created before the
// column existed. Freshly created databases already have all of these.
var pendingMigrations = []migration{
	// Referral source was added once audit submissions started recording
	// the referring pathway.
	{"episodes", "referral_source", "TEXT NOT NULL DEFAULT ''"},
	// CRM distance arrived with the pathology extension of the dataset.
	{"tumours", "crm_mm", "REAL"},
	// Staging basis (clinical vs pathological) for pre-existing rows;
	// historical records were all pathological.
	{"tumours", "basis", "TEXT NOT NULL DEFAULT 'pathological'"},
}

func (s *Store) runMigrations() error {
	applied := 0
	for _, m := range pendingMigrations {
		if !tableExists(s.db, m.Table) {
			continue
		}
		if columnExists(s.db, m.Table, m.Column) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate %s.%s: %w", m.Table, m.Column, err)
		}
		applied++
	}
	if applied > 0 {
		s.log.Info("schema migrations applied", zap.Int("count", applied))
	}
	return nil
}

func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
	).Scan(&name)
	return err == nil
}

func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name, typ string
			notnull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
)

// CreateTumour validates and inserts a tumour. The episode must exist.
func (s *Store) CreateTumour(t *records.Tumour) error {
	if t.ID == "" {
		t.ID = records.NewID()
	}
	if t.Edition == 0 {
		t.Edition = staging.Edition8
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	_, err := s.db.Exec(
		`INSERT INTO tumours (id, episode_id, site, histology, basis, t_code, n_code, m_code, edition, crm_mm, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.EpisodeID, t.Site, t.Histology, string(t.Basis),
		t.T, t.N, t.M, int(t.Edition), t.CRMmm, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("insert tumour: %w", err)
	}
	t.CreatedAt = parseTime(ts)
	t.UpdatedAt = t.CreatedAt

	s.log.Debug("tumour created",
		zap.String("id", t.ID),
		zap.String("episode_id", t.EpisodeID),
		zap.String("tnm", t.T+"/"+t.N+"/"+t.M))
	return nil
}

// GetTumour fetches one tumour with its stage recomputed from the stored
// codes.
func (s *Store) GetTumour(id string) (records.StagedTumour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectTumour+" WHERE id = ?", id)
	t, err := scanTumour(row)
	if err != nil {
		return records.StagedTumour{}, err
	}
	return t.Staged()
}

// ListTumours returns an episode's tumours, stages recomputed, oldest first.
func (s *Store) ListTumours(episodeID string) ([]records.StagedTumour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectTumour+" WHERE episode_id = ? ORDER BY created_at", episodeID)
	if err != nil {
		return nil, fmt.Errorf("list tumours: %w", err)
	}
	defer rows.Close()

	var staged []records.StagedTumour
	for rows.Next() {
		t, err := scanTumour(rows)
		if err != nil {
			return nil, err
		}
		st, err := t.Staged()
		if err != nil {
			return nil, err
		}
		staged = append(staged, st)
	}
	return staged, rows.Err()
}

// UpdateStaging replaces a tumour's TNM codes and edition. The new codes
// are validated before the write; subsequent reads pick up the restaged
// group automatically since stages are never stored.
func (s *Store) UpdateStaging(id, t, n, m string, ed staging.Edition) error {
	if _, err := staging.Normalize(t, n, m, ed); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE tumours SET t_code = ?, n_code = ?, m_code = ?, edition = ?, updated_at = ? WHERE id = ?",
		t, n, m, int(ed), now(), id,
	)
	if err != nil {
		return fmt.Errorf("update staging: %w", err)
	}
	return requireRow(res)
}

// DeleteTumour removes a tumour.
func (s *Store) DeleteTumour(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM tumours WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete tumour: %w", err)
	}
	return requireRow(res)
}

const selectTumour = `SELECT id, episode_id, site, histology, basis, t_code, n_code, m_code, edition, crm_mm, created_at, updated_at
	 FROM tumours`

func scanTumour(row rowScanner) (records.Tumour, error) {
	var (
		t                    records.Tumour
		basis                string
		edition              int
		crm                  sql.NullFloat64
		createdAt, updatedAt string
	)
	err := row.Scan(&t.ID, &t.EpisodeID, &t.Site, &t.Histology, &basis,
		&t.T, &t.N, &t.M, &edition, &crm, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Tumour{}, ErrNotFound
	}
	if err != nil {
		return records.Tumour{}, fmt.Errorf("scan tumour: %w", err)
	}
	t.Basis = records.StagingBasis(basis)
	t.Edition = staging.Edition(edition)
	if crm.Valid {
		t.CRMmm = &crm.Float64
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

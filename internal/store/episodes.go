package store

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// CreateEpisode validates and inserts an episode. A missing ID is filled in.
func (s *Store) CreateEpisode(ep *records.Episode) error {
	if ep.ID == "" {
		ep.ID = records.NewID()
	}
	if ep.Status == "" {
		ep.Status = records.StatusOpen
	}
	if err := ep.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	_, err := s.db.Exec(
		`INSERT INTO episodes (id, patient_ref, hospital, referral_source, diagnosis_date, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.ID, ep.PatientRef, ep.Hospital, ep.ReferralSource, ep.DiagnosisDate, string(ep.Status), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", err)
	}
	ep.CreatedAt = parseTime(ts)
	ep.UpdatedAt = ep.CreatedAt

	s.log.Debug("episode created",
		zap.String("id", ep.ID),
		zap.String("patient_ref", ep.PatientRef))
	return nil
}

// GetEpisode fetches one episode by id.
func (s *Store) GetEpisode(id string) (records.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, patient_ref, hospital, referral_source, diagnosis_date, status, created_at, updated_at
		 FROM episodes WHERE id = ?`, id)
	return scanEpisode(row)
}

// ListEpisodes returns episodes, optionally filtered by status, newest first.
func (s *Store) ListEpisodes(status records.EpisodeStatus) ([]records.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, patient_ref, hospital, referral_source, diagnosis_date, status, created_at, updated_at
		 FROM episodes`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var eps []records.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, rows.Err()
}

// CloseEpisode marks an episode closed.
func (s *Store) CloseEpisode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE episodes SET status = ?, updated_at = ? WHERE id = ?",
		string(records.StatusClosed), now(), id,
	)
	if err != nil {
		return fmt.Errorf("close episode: %w", err)
	}
	return requireRow(res)
}

// DeleteEpisode removes an episode and, via foreign keys, its tumours and
// treatments.
func (s *Store) DeleteEpisode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM episodes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete episode: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row rowScanner) (records.Episode, error) {
	var (
		ep                   records.Episode
		status               string
		createdAt, updatedAt string
	)
	err := row.Scan(&ep.ID, &ep.PatientRef, &ep.Hospital, &ep.ReferralSource,
		&ep.DiagnosisDate, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Episode{}, ErrNotFound
	}
	if err != nil {
		return records.Episode{}, fmt.Errorf("scan episode: %w", err)
	}
	ep.Status = records.EpisodeStatus(status)
	ep.CreatedAt = parseTime(createdAt)
	ep.UpdatedAt = parseTime(updatedAt)
	return ep, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

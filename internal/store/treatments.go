package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
)

// CreateTreatment validates and inserts a treatment.
func (s *Store) CreateTreatment(tr *records.Treatment) error {
	if tr.ID == "" {
		tr.ID = records.NewID()
	}
	if err := tr.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	_, err := s.db.Exec(
		`INSERT INTO treatments (id, episode_id, kind, start_date, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tr.ID, tr.EpisodeID, string(tr.Kind), tr.StartDate, tr.Detail, ts,
	)
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	tr.CreatedAt = parseTime(ts)

	s.log.Debug("treatment created",
		zap.String("id", tr.ID),
		zap.String("episode_id", tr.EpisodeID),
		zap.String("kind", string(tr.Kind)))
	return nil
}

// ListTreatments returns an episode's treatments in start-date order.
func (s *Store) ListTreatments(episodeID string) ([]records.Treatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, episode_id, kind, start_date, detail, created_at
		 FROM treatments WHERE episode_id = ? ORDER BY start_date, created_at`, episodeID)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer rows.Close()

	var trs []records.Treatment
	for rows.Next() {
		var (
			tr        records.Treatment
			kind      string
			createdAt string
		)
		if err := rows.Scan(&tr.ID, &tr.EpisodeID, &kind, &tr.StartDate, &tr.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan treatment: %w", err)
		}
		tr.Kind = records.TreatmentKind(kind)
		tr.CreatedAt = parseTime(createdAt)
		trs = append(trs, tr)
	}
	return trs, rows.Err()
}

// DeleteTreatment removes a treatment.
func (s *Store) DeleteTreatment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM treatments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	return requireRow(res)
}

// CountByStatus reports how many episodes are open and closed. Used by the
// CLI summary view.
func (s *Store) CountByStatus() (open, closed int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT status, COUNT(*) FROM episodes GROUP BY status")
	if err != nil {
		return 0, 0, fmt.Errorf("count episodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return 0, 0, err
		}
		switch records.EpisodeStatus(status) {
		case records.StatusOpen:
			open = n
		case records.StatusClosed:
			closed = n
		default:
			return 0, 0, errors.New("unexpected episode status " + status)
		}
	}
	return open, closed, rows.Err()
}

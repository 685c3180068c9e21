package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartReliefSession records the start of a breathing, puzzle or soothe
// session.
func (s *Store) StartReliefSession(ctx context.Context, kind, detail string) (*ReliefSession, error) {
	id := uuid.NewString()
	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO relief_sessions (id, kind, detail, started_at, status) VALUES (?, ?, ?, ?, ?)`),
		id, kind, detail, now, StatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("start relief session: %w", err)
	}
	return s.GetReliefSession(ctx, id)
}

func (s *Store) GetReliefSession(ctx context.Context, id string) (*ReliefSession, error) {
	r := &ReliefSession{}
	var startedAt string
	var endedAt sql.NullString
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, kind, detail, started_at, ended_at, cycles, status
		 FROM relief_sessions WHERE id = ?`), id,
	).Scan(&r.ID, &r.Kind, &r.Detail, &startedAt, &endedAt, &r.Cycles, &r.Status)
	if err != nil {
		return nil, fmt.Errorf("get relief session %s: %w", id, err)
	}
	r.StartedAt = parseTime(startedAt)
	if endedAt.Valid {
		t := parseTime(endedAt.String)
		r.EndedAt = &t
	}
	return r, nil
}

// FinishReliefSession closes an active session with status and the number
// of completed rounds. Sessions that already ended are left untouched.
func (s *Store) FinishReliefSession(ctx context.Context, id, status string, cycles int) error {
	if status != StatusCompleted && status != StatusCancelled {
		return fmt.Errorf("finish relief session: invalid status %q", status)
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE relief_sessions SET status = ?, cycles = ?, ended_at = ? WHERE id = ? AND status = ?`),
		status, cycles, formatTime(time.Now()), id, StatusActive,
	)
	if err != nil {
		return fmt.Errorf("finish relief session: %w", err)
	}
	return nil
}

// ListReliefSessions returns the latest sessions, newest first.
func (s *Store) ListReliefSessions(ctx context.Context, limit int) ([]ReliefSession, error) {
	query := `SELECT id, kind, detail, started_at, ended_at, cycles, status
		FROM relief_sessions ORDER BY started_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list relief sessions: %w", err)
	}
	defer rows.Close()

	var sessions []ReliefSession
	for rows.Next() {
		var r ReliefSession
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Kind, &r.Detail, &startedAt, &endedAt, &r.Cycles, &r.Status); err != nil {
			return nil, err
		}
		r.StartedAt = parseTime(startedAt)
		if endedAt.Valid {
			t := parseTime(endedAt.String)
			r.EndedAt = &t
		}
		sessions = append(sessions, r)
	}
	return sessions, rows.Err()
}

// ReliefStats summarises sessions started in [from, to).
func (s *Store) ReliefStats(ctx context.Context, from, to time.Time) (ReliefStats, error) {
	var st ReliefStats
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(cycles), 0)
		FROM relief_sessions
		WHERE started_at >= ? AND started_at < ?`),
		formatTime(from), formatTime(to),
	).Scan(&st.Completed, &st.Cancelled, &st.Cycles)
	if err != nil {
		return ReliefStats{}, fmt.Errorf("relief stats: %w", err)
	}
	return st, nil
}

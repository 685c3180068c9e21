package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/unwind/internal/wellness"
)

// InsertRecord stores a check-in without its tags and returns its id. An
// empty ID is assigned a new UUID and a zero CreatedAt becomes now.
func (s *Store) InsertRecord(ctx context.Context, rec wellness.StressRecord) (string, error) {
	return s.insertRecord(ctx, s.db, rec)
}

func (s *Store) insertRecord(ctx context.Context, q querier, rec wellness.StressRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := q.ExecContext(ctx, s.rebind(
		`INSERT INTO checkins (id, created_at, stress_level, mode, notes) VALUES (?, ?, ?, ?, ?)`),
		rec.ID, formatTime(rec.CreatedAt), rec.StressLevel, string(rec.Mode), rec.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("insert checkin: %w", err)
	}
	return rec.ID, nil
}

// SaveCheckIn writes the record, its tags and the links in one transaction.
func (s *Store) SaveCheckIn(ctx context.Context, rec wellness.StressRecord) (string, error) {
	var id string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.insertRecord(ctx, tx, rec)
		if err != nil {
			return err
		}
		if len(rec.MoodTags) == 0 {
			return nil
		}
		labels := make([]string, len(rec.MoodTags))
		for i, m := range rec.MoodTags {
			labels[i] = string(m)
		}
		ids, err := s.upsertTags(ctx, tx, labels)
		if err != nil {
			return err
		}
		tagIDs := make([]int64, 0, len(ids))
		for _, l := range labels {
			tagIDs = append(tagIDs, ids[l])
		}
		return s.linkTags(ctx, tx, id, tagIDs)
	})
	if err != nil {
		return "", fmt.Errorf("save checkin: %w", err)
	}
	return id, nil
}

// GetRecord loads one check-in with its tags.
func (s *Store) GetRecord(ctx context.Context, id string) (*wellness.StressRecord, error) {
	var r wellness.StressRecord
	var createdAt, mode string
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, created_at, stress_level, mode, notes FROM checkins WHERE id = ?`), id,
	).Scan(&r.ID, &createdAt, &r.StressLevel, &mode, &r.Notes)
	if err != nil {
		return nil, fmt.Errorf("get checkin %s: %w", id, err)
	}
	r.CreatedAt = parseTime(createdAt)
	r.Mode = wellness.Mode(mode)

	tags, err := s.tagsFor(ctx, []string{r.ID})
	if err != nil {
		return nil, err
	}
	r.MoodTags = tags[r.ID]
	return &r, nil
}

// QueryRecords lists check-ins with their tags.
func (s *Store) QueryRecords(ctx context.Context, f RecordFilter) ([]wellness.StressRecord, error) {
	query := `SELECT id, created_at, stress_level, mode, notes FROM checkins WHERE 1=1`
	var args []any

	if !f.Since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, formatTime(f.Since))
	}
	if f.Ascending {
		query += ` ORDER BY created_at ASC, id ASC`
	} else {
		query += ` ORDER BY created_at DESC, id DESC`
	}
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query checkins: %w", err)
	}
	defer rows.Close()

	var records []wellness.StressRecord
	for rows.Next() {
		var r wellness.StressRecord
		var createdAt, mode string
		if err := rows.Scan(&r.ID, &createdAt, &r.StressLevel, &mode, &r.Notes); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt)
		r.Mode = wellness.Mode(mode)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(records) == 0 {
		return records, nil
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	tags, err := s.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].MoodTags = tags[records[i].ID]
	}
	return records, nil
}

// CountRecords returns the number of stored check-ins.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count checkins: %w", err)
	}
	return n, nil
}

// tagsFor returns tag labels per check-in id in display order.
func (s *Store) tagsFor(ctx context.Context, ids []string) (map[string][]wellness.Mood, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT ct.checkin_id, t.label
		 FROM checkin_tags ct
		 JOIN mood_tags t ON t.id = ct.tag_id
		 WHERE ct.checkin_id IN (`+placeholders+`)`), args...)
	if err != nil {
		return nil, fmt.Errorf("query checkin tags: %w", err)
	}
	defer rows.Close()

	sets := make(map[string]wellness.MoodSet)
	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return nil, err
		}
		if sets[id] == nil {
			sets[id] = wellness.NewMoodSet()
		}
		sets[id][wellness.Mood(label)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]wellness.Mood, len(sets))
	for id, set := range sets {
		out[id] = set.Sorted()
	}
	return out, nil
}

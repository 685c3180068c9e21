package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func slugOf(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// UpsertTags makes sure a tag exists for every label and returns the ids
// keyed by the label as given. Existing tags keep their id.
func (s *Store) UpsertTags(ctx context.Context, labels []string) (map[string]int64, error) {
	var ids map[string]int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		ids, err = s.upsertTags(ctx, tx, labels)
		return err
	})
	return ids, err
}

func (s *Store) upsertTags(ctx context.Context, q querier, labels []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(labels))
	for _, label := range labels {
		slug := slugOf(label)
		if slug == "" {
			continue
		}
		_, err := q.ExecContext(ctx, s.rebind(
			`INSERT INTO mood_tags (slug, label) VALUES (?, ?) ON CONFLICT (slug) DO NOTHING`),
			slug, strings.TrimSpace(label),
		)
		if err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", label, err)
		}
		var id int64
		err = q.QueryRowContext(ctx, s.rebind(`SELECT id FROM mood_tags WHERE slug = ?`), slug).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("get tag %q: %w", label, err)
		}
		ids[label] = id
	}
	return ids, nil
}

// LinkTags attaches tags to a check-in. Linking the same pair twice is a
// no-op.
func (s *Store) LinkTags(ctx context.Context, recordID string, tagIDs []int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.linkTags(ctx, tx, recordID, tagIDs)
	})
}

func (s *Store) linkTags(ctx context.Context, q querier, recordID string, tagIDs []int64) error {
	for _, id := range tagIDs {
		_, err := q.ExecContext(ctx, s.rebind(
			`INSERT INTO checkin_tags (checkin_id, tag_id) VALUES (?, ?) ON CONFLICT (checkin_id, tag_id) DO NOTHING`),
			recordID, id,
		)
		if err != nil {
			return fmt.Errorf("link tag %d to %s: %w", id, recordID, err)
		}
	}
	return nil
}

func (s *Store) ListTags(ctx context.Context) ([]MoodTag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slug, label FROM mood_tags ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []MoodTag
	for rows.Next() {
		var t MoodTag
		if err := rows.Scan(&t.ID, &t.Slug, &t.Label); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// MoodCounts tallies tag use on check-ins created at or after since, most
// frequent first.
func (s *Store) MoodCounts(ctx context.Context, since time.Time) ([]MoodCount, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT t.label, COUNT(*) AS n
		FROM checkin_tags ct
		JOIN mood_tags t ON t.id = ct.tag_id
		JOIN checkins c ON c.id = ct.checkin_id
		WHERE c.created_at >= ?
		GROUP BY t.label
		ORDER BY n DESC, t.label`),
		formatTime(since),
	)
	if err != nil {
		return nil, fmt.Errorf("mood counts: %w", err)
	}
	defer rows.Close()

	var counts []MoodCount
	for rows.Next() {
		var mc MoodCount
		if err := rows.Scan(&mc.Label, &mc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}

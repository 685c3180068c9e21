package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const currentVersion = 2

// Dialect is the SQL flavour behind a Store.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open picks the backend from dsn: postgres:// and postgresql:// use
// PostgreSQL, anything else is a SQLite file path. An empty dsn opens
// DefaultDBPath.
func Open(dsn string) (*Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgres(dsn)
	}
	if dsn == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("default db path: %w", err)
		}
		dsn = p
	}
	return New(dsn)
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, dialect: SQLite}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewPostgres connects to the PostgreSQL server at dsn and runs migrations.
func NewPostgres(dsn string) (*Store, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{db: db, dialect: Postgres}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Dialect() Dialect { return s.dialect }

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if s.dialect == SQLite {
		err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
		if err != nil {
			return 0, fmt.Errorf("read user_version: %w", err)
		}
		return version, nil
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, fmt.Errorf("create schema_version: %w", err)
	}
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema_version: %w", err)
	}
	return version, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, v int) error {
	if s.dialect == SQLite {
		_, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v))
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, v)
	return err
}

func (s *Store) migrate(ctx context.Context) error {
	version, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(ctx); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(ctx); err != nil {
			return err
		}
	}

	return s.setSchemaVersion(ctx, currentVersion)
}

func (s *Store) migrateV1(ctx context.Context) error {
	tagID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.dialect == Postgres {
		tagID = "BIGSERIAL PRIMARY KEY"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS checkins (
			id           TEXT PRIMARY KEY,
			created_at   TEXT NOT NULL,
			stress_level INTEGER NOT NULL CHECK (stress_level BETWEEN 0 AND 10),
			mode         TEXT NOT NULL,
			notes        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_created ON checkins(created_at)`,

		`CREATE TABLE IF NOT EXISTS mood_tags (
			id    ` + tagID + `,
			slug  TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS checkin_tags (
			checkin_id TEXT NOT NULL REFERENCES checkins(id) ON DELETE CASCADE,
			tag_id     BIGINT NOT NULL REFERENCES mood_tags(id),
			PRIMARY KEY (checkin_id, tag_id)
		)`,

		`CREATE TABLE IF NOT EXISTS relief_sessions (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			ended_at   TEXT,
			cycles     INTEGER NOT NULL DEFAULT 0,
			status     TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_relief_started ON relief_sessions(started_at)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`INSERT INTO settings (key, value) VALUES
			('notification_permission', 'default'),
			('breath_preset',           'Box'),
			('breath_custom',           '4-4-4-4'),
			('soothe_hue',              '210'),
			('soothe_speed',            '6')
		ON CONFLICT (key) DO NOTHING`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV2 seeds the keys that remember delivered nudges between runs.
func (s *Store) migrateV2(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES
			('nudge_last_message',     ''),
			('notification_last_sent', '')
		ON CONFLICT (key) DO NOTHING`)
	return err
}

// DefaultDBPath returns ~/.config/unwind/unwind.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "unwind", "unwind.db"), nil
}

// Timestamps are stored as fixed-width UTC text so lexical order matches
// chronological order in both dialects.
const tsLayout = "2006-01-02T15:04:05.000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t.UTC()
}

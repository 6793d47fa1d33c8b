package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/martinlindenberg/ttinforss/migrations"
)

// SQLite implements Store backed by a single-row SQLite table. The table
// write gives Put last-writer-wins atomicity when runs race.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// SetClock overrides the wall clock (useful for testing).
func (s *SQLite) SetClock(now func() time.Time) {
	s.now = now
}

// Get reads the cached document. A missing row, a query failure or a stored
// expiry not in the future is a miss.
func (s *SQLite) Get(ctx context.Context) (string, bool) {
	var expiresAt int64
	var rss string
	err := s.db.QueryRowContext(ctx,
		`SELECT expires_at, rss FROM feed_cache WHERE id = 1`,
	).Scan(&expiresAt, &rss)
	if err != nil {
		return "", false
	}
	if rss == "" || expiresAt <= s.now().Unix() {
		return "", false
	}
	return rss + Annotation, true
}

// Put stores the document with an expiry of now plus ttlSeconds, replacing
// any prior entry.
func (s *SQLite) Put(ctx context.Context, doc string, ttlSeconds int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feed_cache (id, expires_at, rss) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET expires_at = excluded.expires_at, rss = excluded.rss`,
		s.now().Unix()+int64(ttlSeconds), doc,
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

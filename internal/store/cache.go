// Package store provides the durable key-value backends that hold form drafts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// KV is a string key-value store. Get and UpdatedAt report absent keys with
// ok=false and a nil error; Put is an upsert.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	UpdatedAt(ctx context.Context, key string) (at time.Time, ok bool, err error)
	Close() error
}

// SQL is a KV backed by a database/sql handle. The same statements serve
// SQLite and Postgres; only the placeholder style differs.
type SQL struct {
	db       *sql.DB
	postgres bool
}

var _ KV = (*SQL)(nil)

// Open opens or creates the SQLite draft database at the given path.
func Open(dbPath string) (*SQL, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQL{db: db}, nil
}

// Close closes the database.
func (s *SQL) Close() error {
	return s.db.Close()
}

// Get returns the stored body for key.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.rebind("SELECT body FROM drafts WHERE draft_key = ?"), key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading draft %q: %w", key, err)
	}
	return body, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *SQL) Put(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO drafts (draft_key, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (draft_key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`),
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("writing draft %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM drafts WHERE draft_key = ?"), key); err != nil {
		return fmt.Errorf("deleting draft %q: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (s *SQL) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, s.rebind("SELECT updated_at FROM drafts WHERE draft_key = ?"), key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, true, nil
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres.
func (s *SQL) rebind(query string) string {
	if !s.postgres {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

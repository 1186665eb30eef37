// Package cache keeps fetched item details in a local SQLite database so
// detail pages reopen instantly and survive a backend outage.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, no cgo

	"github.com/five82/showcase/internal/site"
)

// Store is a SQLite-backed detail cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is a cached item together with when it was fetched.
type Entry struct {
	Item      site.Item
	FetchedAt time.Time
}

// Age returns how old the entry is at now.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Open creates or opens the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("cache: empty path")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cache: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: cannot open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS details (
			resource TEXT NOT NULL,
			id INTEGER NOT NULL,
			payload TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (resource, id)
		);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached item for resource and id. The boolean is false when
// there is no entry.
func (s *Store) Get(ctx context.Context, resource site.Resource, id int64) (Entry, bool, error) {
	var (
		payload string
		fetched int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM details WHERE resource = ? AND id = ?`,
		string(resource), id,
	).Scan(&payload, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: read %s/%d: %w", resource, id, err)
	}

	var item site.Item
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return Entry{}, false, fmt.Errorf("cache: decode %s/%d: %w", resource, id, err)
	}
	return Entry{Item: item, FetchedAt: time.UnixMilli(fetched)}, true, nil
}

// Put stores item, replacing any previous entry.
func (s *Store) Put(ctx context.Context, resource site.Resource, item site.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("cache: encode %s/%d: %w", resource, item.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO details (resource, id, payload, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(resource, id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		string(resource), item.ID, string(payload), s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("cache: write %s/%d: %w", resource, item.ID, err)
	}
	return nil
}

// Prune deletes entries older than maxAge and returns how many were removed.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).UnixMilli()
	res, err := s.db.ExecContext(ctx, `DELETE FROM details WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache: prune: %w", err)
	}
	return res.RowsAffected()
}

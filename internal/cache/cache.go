// Package cache stores raw data source responses in SQLite so repeated
// schedule and session lookups do not hit the network.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite
)

const dbFile = "responses.db"

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("cache closed")

// Store is a key/value response cache backed by a single SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time

	// read-held by every query so Close waits for them
	mu     sync.RWMutex
	closed bool
}

// Open creates dir if needed and opens (or creates) the cache database in it.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS responses(
	  key        TEXT    PRIMARY KEY,
	  body       BLOB    NOT NULL,
	  fetched_at INTEGER NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create cache tables: %w", err)
	}
	return nil
}

// Get returns the body stored under key if it is younger than maxAge.
// A maxAge of zero or less accepts entries of any age.
func (s *Store) Get(key string, maxAge time.Duration) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}

	var (
		body      []byte
		fetchedAt int64
	)
	err := s.db.QueryRow(`SELECT body, fetched_at FROM responses WHERE key = ?`, key).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if maxAge > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body under key, replacing any previous entry.
func (s *Store) Put(key string, body []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO responses(key, body, fetched_at) VALUES(?,?,?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		key, body, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge removes entries older than maxAge and reports how many were dropped.
func (s *Store) Purge(maxAge time.Duration) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	cutoff := s.now().Add(-maxAge).Unix()
	res, err := s.db.Exec(`DELETE FROM responses WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Close waits for running queries and releases the database. It is safe
// to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// SQLiteCache keeps entries in a single SQLite file. Useful when many
// (fiscal year, chamber) artifacts should live in one place instead of
// a directory of entry files.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (or creates) the cache database at path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	// WAL mode allows a reader while a batch run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expires_at INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Get retrieves a value. Expired entries are deleted on read.
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var data []byte
	var expiresAt int64
	err := c.db.QueryRow(
		"SELECT data, expires_at FROM entries WHERE key = ?", key,
	).Scan(&data, &expiresAt)
	if err != nil {
		return nil, false
	}

	if expiresAt > 0 && time.Now().Unix() > expiresAt {
		_, _ = c.db.Exec("DELETE FROM entries WHERE key = ?", key)
		return nil, false
	}

	return data, true
}

// Set stores a value. A ttl <= 0 stores the entry without an expiry.
func (c *SQLiteCache) Set(key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}

	_, err := c.db.Exec(
		`INSERT INTO entries (key, data, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes a value.
func (c *SQLiteCache) Delete(key string) error {
	_, err := c.db.Exec("DELETE FROM entries WHERE key = ?", key)
	return err
}

// Clear removes all entries.
func (c *SQLiteCache) Clear() error {
	_, err := c.db.Exec("DELETE FROM entries")
	return err
}

// Close releases the database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

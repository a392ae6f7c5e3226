package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache implements persistent disk-based caching, one JSON entry
// file per key.
type DiskCache struct {
	dir string
}

// NewDiskCache creates a new disk cache rooted at dir.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{dir: dir}
}

type cacheEntry struct {
	Data []byte `json:"data"`
	// Zero means the entry never expires.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a value from the disk cache.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value in the disk cache. A ttl <= 0 stores the entry
// without an expiry.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes a value from the disk cache.
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached files.
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key.
func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}

// Package cache stores parsed artifacts keyed by fiscal year and
// chamber. Parsed amendment books and sponsor indexes never change for
// a given input, so they are written with no expiry and invalidated
// only by deleting the entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// NoExpiry marks an entry that never expires. Any ttl <= 0 means the
// same thing.
const NoExpiry time.Duration = 0

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for one parsed artifact. kind names the
// artifact type ("amendments", "sponsor_index").
func Key(kind string, fiscalYear int, chamber string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", kind, fiscalYear, chamber)))
	return "earmarker:v1:" + hex.EncodeToString(hash[:])
}

package cache

import (
	"fmt"
	"path/filepath"

	"github.com/beaconhilldata/earmarker/internal/model"
)

// Open builds the cache backend selected by configuration. A nil cache
// is never returned; disable caching at the call site instead.
func Open(cfg model.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "disk":
		return NewDiskCache(cfg.Dir), nil
	case "sqlite":
		return NewSQLiteCache(filepath.Join(cfg.Dir, "earmarker.db"))
	case "layered", "":
		return NewLayeredCache(NewDiskCache(cfg.Dir)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

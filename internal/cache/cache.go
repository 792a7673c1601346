// Package cache stores per-file extraction results between scans. Entries
// are keyed by path and file metadata, so a touched file naturally misses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FileKey generates a cache key for one document. Modification time and size
// participate in the key so stale entries are never served for changed
// files, preserving scan idempotence without explicit invalidation.
func FileKey(path string, mtime time.Time, size int64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, mtime.UnixNano(), size)))
	return "semvault:v1:" + hex.EncodeToString(hash[:])
}

// Package cache stores interpretation responses keyed by criterion text so a
// guideline run issues at most one external call per distinct criterion.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for response caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from exact criterion text. Two records with
// identical text always map to the same key.
func Key(criterionText string) string {
	hash := sha256.Sum256([]byte(criterionText))
	return "mcgx:v1:" + hex.EncodeToString(hash[:])
}

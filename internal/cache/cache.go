package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching extraction results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a document identity (URL or content digest)
func Key(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	return "meescheck:v1:" + hex.EncodeToString(hash[:])
}

package cache

import "time"

// Cache stores Gamma market metadata between scan cycles so repeat scans
// do not refetch unchanged markets.
type Cache interface {
	// Get returns the cached value for a key and whether it was present.
	Get(key string) (interface{}, bool)

	// Set stores a value under a key until the TTL expires. The return
	// value reports whether the entry was admitted.
	Set(key string, value interface{}, ttl time.Duration) bool

	// Delete drops a single entry.
	Delete(key string)

	// Clear drops every entry.
	Clear()

	// Close releases the cache's resources.
	Close()
}

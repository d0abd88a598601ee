package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis caches.
// Callers own their keys and invalidation; there is no ambient global cache.
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)

	Get(key string) (interface{}, bool)

	Delete(key string)

	// GetOrSet returns the cached value or loads, stores and returns it.
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections (Redis).
	Close() error
}

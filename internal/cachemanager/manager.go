// Package cachemanager provides a generic in-memory cache used for the
// formatter's per-widget last-rendered-text entries.
package cachemanager

import "time"

// Manager is a generic key/value cache.
type Manager[K ~string, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
}

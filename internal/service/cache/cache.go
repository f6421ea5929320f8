package cache

import "time"

// BytesCache is the storage behind the snapshot cache. The in-memory TTL
// implementation serves a single instance; the Redis implementation gives
// multi-instance deployments a shared view.
type BytesCache interface {
	GetBytes(key string) ([]byte, bool, error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

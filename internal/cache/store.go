package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/codec"

	"github.com/jon4hz/reelcache/internal/config"
)

// Store is the key-value store shared by the response cache and the statistics records.
type Store interface {
	// Get returns the cached value for key. Any error, including a missing key, is a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, expiring after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Exists reports whether key currently holds a value.
	Exists(ctx context.Context, key string) (bool, error)
	// IncrFields increments every field of the counter hash at key by one, atomically as a group.
	IncrFields(ctx context.Context, key string, fields ...string) error
	// Fields returns all counters of the hash at key.
	Fields(ctx context.Context, key string) (map[string]int64, error)
	// Keys returns all keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Stats returns the codec statistics of the underlying value cache.
	Stats() *codec.Stats
	// Type returns the store type.
	Type() config.CacheType
	// Close releases the store's resources.
	Close() error
}

// NewStore creates the store configured in cfg.
func NewStore(cfg *config.CacheConfig) (Store, error) {
	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryStore(), nil
	case config.CacheTypeRedis:
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// valueBytes converts a value returned by a gocache store into bytes.
// The memory store returns what was set, the redis store returns a string.
func valueBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case string:
		return []byte(val), nil
	default:
		return nil, fmt.Errorf("unexpected cached value type %T", v)
	}
}

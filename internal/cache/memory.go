package cache

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/codec"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jon4hz/reelcache/internal/config"
)

// MemoryStore is a process local Store backed by go-cache.
type MemoryStore struct {
	client *gocache.Cache
	values *cache.Cache[any]

	// counters holds the statistics hashes, mu serializes group increments.
	mu       sync.Mutex
	counters *gocache.Cache
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	// items expire per entry, the janitor only purges expired ones
	client := gocache.New(gocache.NoExpiration, 10*time.Minute)
	return &MemoryStore{
		client:   client,
		values:   cache.New[any](go_store.NewGoCache(client)),
		counters: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := m.values.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return valueBytes(v)
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.values.Set(ctx, key, value, store.WithExpiration(ttl))
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, found := m.client.Get(key)
	return found, nil
}

func (m *MemoryStore) IncrFields(_ context.Context, key string, fields ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[string]int64)
	if cur, ok := m.counters.Get(key); ok {
		for f, n := range cur.(map[string]int64) {
			next[f] = n
		}
	}
	for _, f := range fields {
		next[f]++
	}
	m.counters.Set(key, next, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Fields(_ context.Context, key string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int64)
	if cur, ok := m.counters.Get(key); ok {
		for f, n := range cur.(map[string]int64) {
			out[f] = n
		}
	}
	return out, nil
}

func (m *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for _, c := range []*gocache.Cache{m.client, m.counters} {
		for k := range c.Items() {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *MemoryStore) Stats() *codec.Stats {
	return m.values.GetCodec().GetStats()
}

func (m *MemoryStore) Type() config.CacheType {
	return config.CacheTypeMemory
}

func (m *MemoryStore) Close() error {
	return nil
}

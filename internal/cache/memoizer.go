package cache

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Loader produces the response bytes on a cache miss.
type Loader func(ctx context.Context) ([]byte, error)

// Memoizer returns the cached response for key or loads and caches it.
type Memoizer interface {
	Memoize(ctx context.Context, key Key, ttl time.Duration, load Loader) ([]byte, error)
}

// NewMemoizer returns the caching layer wrapped by the statistics layer.
func NewMemoizer(s Store) Memoizer {
	return &statsLayer{
		store: s,
		next:  &cachingLayer{store: s},
	}
}

// cachingLayer is a get-or-compute-and-store memoizer.
// There is no single-flight, concurrent misses on the same key all load.
type cachingLayer struct {
	store Store
}

func (c *cachingLayer) Memoize(ctx context.Context, key Key, ttl time.Duration, load Loader) ([]byte, error) {
	if ttl <= 0 {
		return load(ctx)
	}

	k := key.String()
	data, err := c.store.Get(ctx, k)
	if err == nil {
		return data, nil
	}
	log.Debug("Cache miss", "key", k, "reason", err)

	data, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, k, data, ttl); err != nil {
		log.Error("Failed to store cached response", "key", k, "error", err)
	}
	return data, nil
}

// statsLayer counts a hit or miss per endpoint label around the next memoizer.
// The existence check races with the caching layer, so the outcome is best effort.
type statsLayer struct {
	store Store
	next  Memoizer
}

func (s *statsLayer) Memoize(ctx context.Context, key Key, ttl time.Duration, load Loader) ([]byte, error) {
	if ttl <= 0 {
		return s.next.Memoize(ctx, key, ttl, load)
	}

	k := key.String()
	hit, err := s.store.Exists(ctx, k)
	if err != nil {
		log.Warn("Cache existence check failed", "key", k, "error", err)
		hit = false
	}
	log.Debug("Cache pre-check", "key", k, "hit", hit)

	data, loadErr := s.next.Memoize(ctx, key, ttl, load)

	if err := RecordStats(ctx, s.store, key.Label(), hit); err != nil {
		log.Error("Failed to record cache stats", "label", key.Label(), "error", err)
	}

	return data, loadErr
}

package cache

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/codec"
	"github.com/eko/gocache/lib/v4/store"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jon4hz/reelcache/internal/config"
)

// RedisStore is a Store shared between all instances connected to the same redis server.
type RedisStore struct {
	client *redis.Client
	values *cache.Cache[any]
}

// NewRedisStore connects to the redis server configured in cfg.
// RedisURL may be a plain host:port or a redis:// URL.
func NewRedisStore(cfg *config.CacheConfig) (*RedisStore, error) {
	opts := &redis.Options{
		Addr: cfg.RedisURL,
		DB:   cfg.RedisDB,
	}
	if strings.HasPrefix(cfg.RedisURL, "redis://") || strings.HasPrefix(cfg.RedisURL, "rediss://") {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		if cfg.RedisDB != 0 {
			parsed.DB = cfg.RedisDB
		}
		opts = parsed
	}
	return newRedisStoreFromClient(redis.NewClient(opts)), nil
}

func newRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		values: cache.New[any](redis_store.NewRedis(client)),
	}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.values.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return valueBytes(v)
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.values.Set(ctx, key, value, store.WithExpiration(ttl))
}

func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrFields increments the fields inside a MULTI/EXEC block.
func (r *RedisStore) IncrFields(ctx context.Context, key string, fields ...string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, f := range fields {
			pipe.HIncrBy(ctx, key, f, 1)
		}
		return nil
	})
	return err
}

func (r *RedisStore) Fields(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for f, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid counter %s in %s: %w", f, key, err)
		}
		out[f] = n
	}
	return out, nil
}

// Keys uses SCAN so large keyspaces do not block the server.
func (r *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, prefix+"*", 1000).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

func (r *RedisStore) Stats() *codec.Stats {
	return r.values.GetCodec().GetStats()
}

func (r *RedisStore) Type() config.CacheType {
	return config.CacheTypeRedis
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

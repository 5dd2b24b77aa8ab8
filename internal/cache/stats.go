package cache

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// StatsKeyPrefix prefixes the store key of every statistics record.
const StatsKeyPrefix = "cache_stats:"

const (
	fieldHits   = "hits"
	fieldMisses = "misses"
	fieldTotal  = "total"
)

// EndpointStats is the hit/miss record of one endpoint label.
type EndpointStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	Total    int64   `json:"total"`
	HitRatio float64 `json:"hit_ratio"`
}

// RecordStats counts one hit or miss for label. The outcome and the total are incremented together.
func RecordStats(ctx context.Context, s Store, label string, hit bool) error {
	field := fieldMisses
	if hit {
		field = fieldHits
	}
	if err := s.IncrFields(ctx, StatsKeyPrefix+label, field, fieldTotal); err != nil {
		return fmt.Errorf("failed to record cache stats for %s: %w", label, err)
	}
	return nil
}

// LoadStats returns the statistics of every endpoint label found in the store.
func LoadStats(ctx context.Context, s Store) (map[string]EndpointStats, error) {
	keys, err := s.Keys(ctx, StatsKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache stats: %w", err)
	}

	out := make(map[string]EndpointStats, len(keys))
	for _, key := range keys {
		fields, err := s.Fields(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read cache stats %s: %w", key, err)
		}
		out[strings.TrimPrefix(key, StatsKeyPrefix)] = newEndpointStats(
			fields[fieldHits],
			fields[fieldMisses],
			fields[fieldTotal],
		)
	}
	return out, nil
}

func newEndpointStats(hits, misses, total int64) EndpointStats {
	return EndpointStats{
		Hits:     hits,
		Misses:   misses,
		Total:    total,
		HitRatio: HitRatio(hits, total),
	}
}

// HitRatio returns hits/total as a percentage rounded to two decimals, or 0 if total is 0.
func HitRatio(hits, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(total)*100*100) / 100
}

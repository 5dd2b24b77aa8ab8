package cmd

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jon4hz/reelcache/internal/cache"
)

var cacheStatsCmd = &cobra.Command{
	Use:   "cache-stats",
	Short: "Show cache statistics",
	Long:  `Display the hit/miss statistics of every cached endpoint from the configured cache store.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()

		store, err := cache.NewStore(cfg.Cache)
		if err != nil {
			return fmt.Errorf("failed to create cache store: %w", err)
		}
		defer store.Close() //nolint:errcheck

		stats, err := cache.LoadStats(cmd.Context(), store)
		if err != nil {
			return fmt.Errorf("failed to load cache stats: %w", err)
		}

		fmt.Printf("Cache Statistics (%s store):\n", store.Type())
		if len(stats) == 0 {
			fmt.Println("No requests recorded yet.")
			return nil
		}

		labels := lo.Keys(stats)
		slices.Sort(labels)

		var hits, total int64
		for _, label := range labels {
			s := stats[label]
			hits += s.Hits
			total += s.Total
			fmt.Printf("  %-28s hits: %-10s misses: %-10s total: %-10s hit ratio: %.2f%%\n",
				label, humanize.Comma(s.Hits), humanize.Comma(s.Misses), humanize.Comma(s.Total), s.HitRatio)
		}
		fmt.Printf("\nTotal Requests: %s\n", humanize.Comma(total))
		fmt.Printf("Overall Hit Ratio: %.2f%%\n", cache.HitRatio(hits, total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheStatsCmd)
}

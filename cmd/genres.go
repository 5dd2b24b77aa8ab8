package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the TMDb genres",
	Long:  `Fetch and print the movie and tv genres used to resolve genre ids in listings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		client := tmdb.New(cfg.TMDB)

		for _, mediaType := range []string{tmdb.MediaTypeMovie, tmdb.MediaTypeTV} {
			genres, err := client.GenreList(cmd.Context(), mediaType)
			if err != nil {
				return fmt.Errorf("failed to fetch %s genres: %w", mediaType, err)
			}
			fmt.Printf("%s genres (%d):\n", mediaType, len(genres))
			for _, g := range genres {
				fmt.Printf("  %6d  %s\n", g.ID, g.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jon4hz/reelcache/internal/api"
	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/normalize"
	"github.com/jon4hz/reelcache/internal/scheduler"
	"github.com/jon4hz/reelcache/pkg/tmdb"
)

const genreRefreshJobID = "genre-refresh"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reelcache server",
	Long:  `Start the reelcache HTTP server and the background scheduler.`,
	Example: `reelcache serve --config config.yml
reelcache serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		log.Fatalf("failed to create cache store: %v", err)
	}
	defer store.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := tmdb.New(cfg.TMDB)

	genres := normalize.NewGenreCache()
	if err := genres.Load(ctx, client); err != nil {
		log.Warn("failed to load genres, genre names stay empty until the next reload", "error", err)
	}

	sched, err := scheduler.New()
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	if cfg.GenreRefreshSchedule != "" {
		if err := sched.AddCronJob(
			genreRefreshJobID,
			"Genre refresh",
			"Reload the genre lookup cache from TMDb",
			cfg.GenreRefreshSchedule,
			func(ctx context.Context) error { return genres.Load(ctx, client) },
		); err != nil {
			log.Fatalf("failed to schedule genre refresh: %v", err)
		}
	}

	server, err := api.New(cfg, client, store, normalize.New(client, genres), sched, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	sched.Start()

	go func() {
		log.Info("starting API server", "listen", cfg.Listen, "cache", store.Type(), "admin", cfg.AdminEnabled())
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
			cancel()
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("reelcache started successfully")
	select {
	case <-c:
	case <-ctx.Done():
	}
	log.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down API server", "error", err)
	}
	if err := sched.Shutdown(); err != nil {
		log.Error("failed to stop scheduler", "error", err)
	}
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/api/auth"
	"github.com/jon4hz/reelcache/internal/api/handler"
	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/config"
	"github.com/jon4hz/reelcache/internal/normalize"
)

// Server is the HTTP server of the proxy.
type Server struct {
	cfg        *config.Config
	ginEngine  *gin.Engine
	httpServer *http.Server
}

// New creates the server and registers all routes.
// jobs may be nil when the admin routes are disabled.
func New(
	cfg *config.Config,
	client handler.TMDB,
	store cache.Store,
	normalizer *normalize.Normalizer,
	jobs handler.Jobs,
	debug bool,
) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()
	ginEngine.Use(
		requestID(),
		requestLogger(),
		gin.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	s := &Server{
		cfg:       cfg,
		ginEngine: ginEngine,
		httpServer: &http.Server{
			Addr:              cfg.Listen,
			Handler:           ginEngine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	var ttl *config.TTLConfig
	if cfg.Cache != nil {
		ttl = cfg.Cache.TTL
	}
	s.setupRoutes(handler.New(client, store, normalizer, ttl))

	if cfg.AdminEnabled() {
		if jobs == nil {
			return nil, fmt.Errorf("scheduler is required for the admin routes")
		}
		s.setupAdminRoutes(handler.NewAdmin(normalizer.Genres(), client, jobs, store))
	}

	return s, nil
}

func (s *Server) setupRoutes(h *handler.Handler) {
	api := s.ginEngine.Group("/api")

	media := api.Group("/media/:type")
	media.GET("/popular", h.GetPopular)
	media.GET("/top_rated", h.GetTopRated)
	media.GET("/trending", h.GetTrending)
	media.GET("/discover", h.GetDiscover)
	media.GET("/latest", h.GetLatest)
	media.GET("/:id", h.GetMedia)
	media.GET("/:id/credits", h.GetMediaCredits)
	media.GET("/:id/keywords", h.GetMediaKeywords)

	api.GET("/movie/upcoming", h.GetUpcoming)
	api.GET("/tv/on_the_air", h.GetOnTheAir)
	api.GET("/tv/:id/seasons", h.GetSeasons)
	api.GET("/tv/:id/season/:season", h.GetSeason)

	api.GET("/person/:id", h.GetPerson)
	api.GET("/person/:id/combined_credits", h.GetPersonCombinedCredits)
	api.GET("/collection/:id", h.GetCollection)
	api.GET("/search", h.Search)
	api.GET("/cache/stats", h.GetCacheStats)
}

func (s *Server) setupAdminRoutes(h *handler.AdminHandler) {
	admin := s.ginEngine.Group("/api/admin")
	admin.Use(auth.NewAPIKeyProvider(s.cfg.APIKey).RequireAuth())

	admin.GET("/genres", h.GetGenres)
	admin.POST("/genres/reload", h.ReloadGenres)
	admin.GET("/jobs", h.GetJobs)
	admin.POST("/jobs/:id/run", h.RunJob)
	admin.GET("/cache", h.GetCacheInfo)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

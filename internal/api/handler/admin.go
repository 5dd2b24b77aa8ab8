package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/mergestat/timediff"

	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/normalize"
	"github.com/jon4hz/reelcache/internal/scheduler"
)

// Jobs is the part of the scheduler exposed to the admin routes.
type Jobs interface {
	ListJobs() []scheduler.JobInfo
	RunJobNow(id string) error
}

// AdminHandler serves the maintenance routes.
type AdminHandler struct {
	genres *normalize.GenreCache
	lister normalize.GenreLister
	jobs   Jobs
	store  cache.Store
}

// NewAdmin creates a new AdminHandler.
func NewAdmin(genres *normalize.GenreCache, lister normalize.GenreLister, jobs Jobs, store cache.Store) *AdminHandler {
	return &AdminHandler{
		genres: genres,
		lister: lister,
		jobs:   jobs,
		store:  store,
	}
}

// GetGenres returns the number of cached genres per media type and the age of the table.
func (h *AdminHandler) GetGenres(c *gin.Context) {
	loadedAt := h.genres.LoadedAt()
	age := "never"
	if !loadedAt.IsZero() {
		age = timediff.TimeDiff(loadedAt)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"counts":    h.genres.Counts(),
		"loaded_at": loadedAt.Format(time.RFC3339),
		"age":       age,
	})
}

// ReloadGenres reloads the genre lookup cache from TMDb.
func (h *AdminHandler) ReloadGenres(c *gin.Context) {
	if err := h.genres.Load(c.Request.Context(), h.lister); err != nil {
		log.Error("Failed to reload genres", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Failed to reload genres",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Genres reloaded successfully",
		"counts":  h.genres.Counts(),
	})
}

// GetJobs returns all scheduler jobs.
func (h *AdminHandler) GetJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    h.jobs.ListJobs(),
	})
}

// RunJob manually triggers a scheduler job.
func (h *AdminHandler) RunJob(c *gin.Context) {
	jobID := c.Param("id")

	if err := h.jobs.RunJobNow(jobID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scheduler.ErrJobNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job triggered successfully",
	})
}

// GetCacheInfo returns the type of the cache store and the statistics of its value codec.
func (h *AdminHandler) GetCacheInfo(c *gin.Context) {
	stats := h.store.Stats()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"type":    h.store.Type(),
		"codec": gin.H{
			"hits":           stats.Hits,
			"miss":           stats.Miss,
			"set_success":    stats.SetSuccess,
			"set_error":      stats.SetError,
			"delete_success": stats.DeleteSuccess,
			"delete_error":   stats.DeleteError,
		},
	})
}

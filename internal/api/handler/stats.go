package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/cache"
)

// GetCacheStats returns the hit/miss statistics of every cached endpoint.
func (h *Handler) GetCacheStats(c *gin.Context) {
	stats, err := cache.LoadStats(c.Request.Context(), h.store)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cache_stats": stats})
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/cache"
)

const msgCollectionNotFound = "Collection not found"

// GetCollection returns a movie collection with its parts in release order.
func (h *Handler) GetCollection(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "Invalid collection ID"); err != nil {
		respondError(c, err)
		return
	}

	key := cache.Key{Endpoint: "collection", IDs: []string{id}}
	h.cached(c, key, h.ttl.Collection, func(ctx context.Context) (any, error) {
		data, err := h.tmdb.Collection(ctx, id)
		if err != nil {
			return nil, notFound(msgCollectionNotFound, err)
		}
		col := h.normalizer.FormatCollection(data)
		if col == nil {
			return nil, &NotFoundError{Message: msgCollectionNotFound}
		}
		return col, nil
	})
}

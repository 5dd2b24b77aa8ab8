package handler

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/normalize"
	"github.com/jon4hz/reelcache/pkg/tmdb"
)

// GetMedia returns the full normalized record of a movie or tv show.
func (h *Handler) GetMedia(c *gin.Context) {
	mediaType, id, err := validateMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}

	key := cache.Key{Endpoint: "details", MediaType: mediaType, IDs: []string{id}}
	h.cached(c, key, h.ttl.Details, func(ctx context.Context) (any, error) {
		log.Info("Fetching media details", "type", mediaType, "id", id)
		details, err := h.tmdb.Details(ctx, mediaType, id)
		if err != nil {
			return nil, notFound(mediaNotFound(mediaType), err)
		}
		media := h.normalizer.FormatMedia(ctx, details, mediaType, true)
		if media == nil {
			return nil, &NotFoundError{Message: mediaNotFound(mediaType)}
		}
		return media, nil
	})
}

// GetMediaCredits returns the top cast and the directors of a movie or tv show.
func (h *Handler) GetMediaCredits(c *gin.Context) {
	mediaType, id, err := validateMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}

	key := cache.Key{Endpoint: "credits", MediaType: mediaType, IDs: []string{id}}
	h.cached(c, key, h.ttl.Credits, func(ctx context.Context) (any, error) {
		var credits, details map[string]any

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			credits, err = h.tmdb.Credits(gctx, mediaType, id)
			return err
		})
		g.Go(func() (err error) {
			details, err = h.tmdb.Details(gctx, mediaType, id)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, notFound(mediaNotFound(mediaType), err)
		}

		out := normalize.FormatMediaCredits(credits, details, mediaType, id)
		if out == nil {
			return nil, &NotFoundError{Message: "Credits not found"}
		}
		return out, nil
	})
}

// GetMediaKeywords returns the keywords of a movie or tv show.
func (h *Handler) GetMediaKeywords(c *gin.Context) {
	mediaType, id, err := validateMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}

	key := cache.Key{Endpoint: "keywords", MediaType: mediaType, IDs: []string{id}}
	h.cached(c, key, h.ttl.Keywords, func(ctx context.Context) (any, error) {
		data, err := h.tmdb.Keywords(ctx, mediaType, id)
		if err != nil {
			return nil, notFound(mediaNotFound(mediaType), err)
		}
		out := normalize.FormatKeywords(data, mediaType, id)
		if out == nil {
			return nil, &NotFoundError{Message: mediaNotFound(mediaType)}
		}
		return out, nil
	})
}

// latestResponse wraps the most recently added title.
type latestResponse struct {
	Results []*normalize.MediaSummary `json:"results"`
}

// GetLatest returns the most recently added movie or tv show. It is never cached.
func (h *Handler) GetLatest(c *gin.Context) {
	mediaType := c.Param("type")
	if err := validateMediaType(mediaType); err != nil {
		respondError(c, err)
		return
	}

	h.uncached(c, func(ctx context.Context) (any, error) {
		resp := latestResponse{Results: []*normalize.MediaSummary{}}

		data, err := h.tmdb.Latest(ctx, mediaType)
		if err != nil {
			if tmdb.IsNotFound(err) {
				log.Warn("No latest title found", "type", mediaType)
				return resp, nil
			}
			return nil, err
		}

		if summary := h.normalizer.FormatSummary(data, mediaType); summary != nil {
			resp.Results = append(resp.Results, summary)
		}
		return resp, nil
	})
}

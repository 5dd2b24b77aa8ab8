package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/normalize"
	"github.com/jon4hz/reelcache/pkg/tmdb"
)

// GetSeasons returns the season overview of a tv show.
func (h *Handler) GetSeasons(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "Invalid TMDb ID"); err != nil {
		respondError(c, err)
		return
	}

	notFoundMsg := mediaNotFound(tmdb.MediaTypeTV)
	key := cache.Key{Endpoint: "seasons", MediaType: tmdb.MediaTypeTV, IDs: []string{id}}
	h.cached(c, key, h.ttl.Seasons, func(ctx context.Context) (any, error) {
		details, err := h.tmdb.Details(ctx, tmdb.MediaTypeTV, id)
		if err != nil {
			return nil, notFound(notFoundMsg, err)
		}
		seasons := normalize.FormatSeasons(details, id)
		if seasons == nil {
			return nil, &NotFoundError{Message: notFoundMsg}
		}
		return seasons, nil
	})
}

// GetSeason returns a single season of a tv show with all of its episodes.
func (h *Handler) GetSeason(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "Invalid TMDb ID"); err != nil {
		respondError(c, err)
		return
	}
	seasonNumber, err := parseSeasonNumber(c.Param("season"))
	if err != nil {
		respondError(c, err)
		return
	}

	key := cache.Key{
		Endpoint:  "season",
		MediaType: tmdb.MediaTypeTV,
		IDs:       []string{id, strconv.Itoa(seasonNumber)},
	}
	h.cached(c, key, h.ttl.Seasons, func(ctx context.Context) (any, error) {
		data, err := h.tmdb.Season(ctx, id, seasonNumber)
		if err != nil {
			return nil, notFound("Season not found", err)
		}
		season := normalize.FormatSeason(data, seasonNumber)
		if season == nil {
			return nil, &NotFoundError{Message: "Season not found"}
		}
		return season, nil
	})
}

func parseSeasonNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("Invalid season number")
	}
	if n < 0 {
		return 0, invalid("Season number must be non-negative")
	}
	return n, nil
}

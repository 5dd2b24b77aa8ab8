package handler

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/normalize"
	"github.com/jon4hz/reelcache/pkg/tmdb"
)

const (
	listPopular   = "popular"
	listTopRated  = "top_rated"
	listUpcoming  = "upcoming"
	listOnTheAir  = "on_the_air"
	defaultSortBy = "popularity.desc"
)

var (
	timeWindows  = []string{"day", "week"}
	discoverSort = []string{
		"popularity.desc", "popularity.asc",
		"vote_average.desc", "vote_average.asc",
		"release_date.desc", "release_date.asc",
	}
)

// listing normalizes a page of TMDb results. An empty page yields the empty listing.
func (h *Handler) listing(p *tmdb.Page, page int, mediaType string) *normalize.Listing {
	if p == nil || len(p.Results) == 0 {
		return normalize.EmptyListing(page)
	}
	return normalize.NewListing(h.normalizer.FormatSummaries(p.Results, mediaType), page, p.TotalResults, p.TotalPages)
}

func pageValues(page int) url.Values {
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

// GetPopular returns a page of popular movies or tv shows.
func (h *Handler) GetPopular(c *gin.Context) {
	h.serveList(c, c.Param("type"), listPopular)
}

// GetTopRated returns a page of top rated movies or tv shows.
func (h *Handler) GetTopRated(c *gin.Context) {
	h.serveList(c, c.Param("type"), listTopRated)
}

// GetUpcoming returns a page of upcoming movies.
func (h *Handler) GetUpcoming(c *gin.Context) {
	h.serveList(c, tmdb.MediaTypeMovie, listUpcoming)
}

// GetOnTheAir returns a page of tv shows currently on the air.
func (h *Handler) GetOnTheAir(c *gin.Context) {
	h.serveList(c, tmdb.MediaTypeTV, listOnTheAir)
}

func (h *Handler) serveList(c *gin.Context, mediaType, list string) {
	if err := validateMediaType(mediaType); err != nil {
		respondError(c, err)
		return
	}
	page := pageParam(c)

	key := cache.Key{Endpoint: list, MediaType: mediaType, Params: pageValues(page)}
	h.cached(c, key, h.ttl.Listing, func(ctx context.Context) (any, error) {
		log.Info("Fetching list", "list", list, "type", mediaType, "page", page)
		p, err := h.tmdb.List(ctx, mediaType, list, page)
		if err != nil {
			return nil, err
		}
		return h.listing(p, page, mediaType), nil
	})
}

// GetTrending returns a page of trending movies or tv shows for the day or the week.
// Upstream failures other than rate limiting answer with an empty listing.
func (h *Handler) GetTrending(c *gin.Context) {
	mediaType := c.Param("type")
	if err := validateMediaType(mediaType); err != nil {
		respondError(c, err)
		return
	}
	timeWindow := c.DefaultQuery("time_window", "week")
	if !slices.Contains(timeWindows, timeWindow) {
		respondError(c, invalid("Invalid time window"))
		return
	}
	page := pageParam(c)

	params := pageValues(page)
	params.Set("time_window", timeWindow)
	key := cache.Key{Endpoint: "trending", MediaType: mediaType, Params: params}
	h.cached(c, key, h.ttl.Listing, func(ctx context.Context) (any, error) {
		p, err := h.tmdb.Trending(ctx, mediaType, timeWindow, page)
		if err != nil {
			if status := tmdb.StatusCode(err); status != 0 && !tmdb.IsRateLimited(err) {
				log.Warn("No trending titles found", "type", mediaType, "status", status)
				return normalize.EmptyListing(page), nil
			}
			return nil, err
		}
		return h.listing(p, page, mediaType), nil
	})
}

// GetDiscover returns a page of movies or tv shows matching the given filters.
func (h *Handler) GetDiscover(c *gin.Context) {
	mediaType := c.Param("type")
	if err := validateMediaType(mediaType); err != nil {
		respondError(c, err)
		return
	}
	page := pageParam(c)
	filters := discoverFilters(c, mediaType, page)

	key := cache.Key{Endpoint: "discover", MediaType: mediaType, Params: filters}
	h.cached(c, key, h.ttl.Discover, func(ctx context.Context) (any, error) {
		log.Info("Discovering titles", "type", mediaType, "filters", filters.Encode())
		p, err := h.tmdb.Discover(ctx, mediaType, filters)
		if err != nil {
			return nil, err
		}
		return h.listing(p, page, mediaType), nil
	})
}

// discoverFilters translates the recognized query parameters into TMDb discover filters.
// Unknown parameters are ignored so they never split the cache.
func discoverFilters(c *gin.Context, mediaType string, page int) url.Values {
	sortBy := c.DefaultQuery("sort_by", defaultSortBy)
	if !slices.Contains(discoverSort, sortBy) {
		sortBy = defaultSortBy
	}

	releaseField, yearField := "primary_release_date", "primary_release_year"
	if mediaType == tmdb.MediaTypeTV {
		releaseField, yearField = "first_air_date", "first_air_date_year"
	}

	filters := pageValues(page)
	filters.Set("sort_by", strings.Replace(sortBy, "release_date", releaseField, 1))

	if genre := c.Query("genre"); genre != "" {
		filters.Set("with_genres", genre)
	}
	if year := c.Query("year"); year != "" {
		filters.Set(yearField, year)
	}
	if country := c.Query("country"); country != "" {
		filters.Set("with_origin_country", strings.ToUpper(country))
	}
	if language := c.Query("language"); language != "" {
		filters.Set("with_original_language", language)
	}
	for _, name := range []string{"vote_average.gte", "vote_average.lte"} {
		if v, err := strconv.ParseFloat(c.Query(name), 64); err == nil && v != 0 {
			filters.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	return filters
}

// Search runs a multi search and keeps movies and tv shows. It is never cached.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, invalid("Query parameter is required"))
		return
	}
	page := pageParam(c)

	h.uncached(c, func(ctx context.Context) (any, error) {
		log.Info("Searching", "query", query, "page", page)
		p, err := h.tmdb.SearchMulti(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return h.listing(p, page, ""), nil
	})
}

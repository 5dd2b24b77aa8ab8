package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/config"
	"github.com/jon4hz/reelcache/internal/normalize"
	"github.com/jon4hz/reelcache/pkg/tmdb"
)

const jsonContentType = "application/json; charset=utf-8"

var idPattern = regexp.MustCompile(`^\d+$`)

// TMDB is the upstream API used by the handlers. *tmdb.Client implements it.
type TMDB interface {
	normalize.Fetcher
	normalize.GenreLister
	Keywords(ctx context.Context, mediaType, id string) (map[string]any, error)
	Collection(ctx context.Context, id string) (map[string]any, error)
	Person(ctx context.Context, id string) (map[string]any, error)
	PersonCombinedCredits(ctx context.Context, id string) (map[string]any, error)
	Season(ctx context.Context, id string, seasonNumber int) (map[string]any, error)
	Latest(ctx context.Context, mediaType string) (map[string]any, error)
	List(ctx context.Context, mediaType, list string, page int) (*tmdb.Page, error)
	Trending(ctx context.Context, mediaType, timeWindow string, page int) (*tmdb.Page, error)
	Discover(ctx context.Context, mediaType string, filters url.Values) (*tmdb.Page, error)
	SearchMulti(ctx context.Context, query string, page int) (*tmdb.Page, error)
}

// Handler serves the public proxy routes.
type Handler struct {
	tmdb       TMDB
	store      cache.Store
	memo       cache.Memoizer
	normalizer *normalize.Normalizer
	ttl        *config.TTLConfig
}

// New creates a new Handler.
func New(client TMDB, store cache.Store, normalizer *normalize.Normalizer, ttl *config.TTLConfig) *Handler {
	if ttl == nil {
		ttl = config.DefaultTTL()
	}
	return &Handler{
		tmdb:       client,
		store:      store,
		memo:       cache.NewMemoizer(store),
		normalizer: normalizer,
		ttl:        ttl,
	}
}

// builder produces the response body of a route on a cache miss.
type builder func(ctx context.Context) (any, error)

// cached answers with the memoized JSON encoding of build.
func (h *Handler) cached(c *gin.Context, key cache.Key, ttl time.Duration, build builder) {
	data, err := h.memo.Memoize(c.Request.Context(), key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := build(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, data)
}

// uncached answers with the JSON encoding of build without touching the cache.
func (h *Handler) uncached(c *gin.Context, build builder) {
	v, err := build(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func validateID(id, message string) error {
	if !idPattern.MatchString(id) {
		return invalid(message)
	}
	return nil
}

func validateMediaType(mediaType string) error {
	if mediaType != tmdb.MediaTypeMovie && mediaType != tmdb.MediaTypeTV {
		return invalid("Invalid media type")
	}
	return nil
}

// validateMedia checks the :type and :id path parameters.
func validateMedia(c *gin.Context) (mediaType, id string, err error) {
	mediaType, id = c.Param("type"), c.Param("id")
	if err := validateID(id, "Invalid TMDb ID"); err != nil {
		return "", "", err
	}
	if err := validateMediaType(mediaType); err != nil {
		return "", "", err
	}
	return mediaType, id, nil
}

// pageParam returns the page query parameter. Anything that is not a positive integer is page 1.
func pageParam(c *gin.Context) int {
	p, err := strconv.ParseUint(c.Query("page"), 10, 32)
	if err != nil || p == 0 {
		return 1
	}
	page, err := safecast.ToInt(p)
	if err != nil {
		return 1
	}
	return page
}

// mediaNotFound returns the 404 message of a media type, e.g. "Movie not found".
func mediaNotFound(mediaType string) string {
	if mediaType == "" {
		return "Not found"
	}
	return strings.ToUpper(mediaType[:1]) + mediaType[1:] + " not found"
}

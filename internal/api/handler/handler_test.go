package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=4", 4},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
		{"?page=99999999999", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := testContext(t, "/"+tt.query)
			assert.Equal(t, tt.want, pageParam(c))
		})
	}
}

func TestParseSeasonNumber(t *testing.T) {
	n, err := parseSeasonNumber("0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = parseSeasonNumber("-1")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Season number must be non-negative", vErr.Message)

	_, err = parseSeasonNumber("1.5")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid season number", vErr.Message)
}

func TestMediaNotFound(t *testing.T) {
	assert.Equal(t, "Movie not found", mediaNotFound(tmdb.MediaTypeMovie))
	assert.Equal(t, "Tv not found", mediaNotFound(tmdb.MediaTypeTV))
}

func TestDiscoverFilters(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		mediaType string
		want      map[string]string
	}{
		{
			name:      "defaults",
			target:    "/",
			mediaType: tmdb.MediaTypeMovie,
			want:      map[string]string{"page": "1", "sort_by": "popularity.desc"},
		},
		{
			name:      "unknown sort falls back",
			target:    "/?sort_by=title.asc",
			mediaType: tmdb.MediaTypeMovie,
			want:      map[string]string{"page": "1", "sort_by": "popularity.desc"},
		},
		{
			name:      "movie filters",
			target:    "/?genre=28&year=1999&country=de&language=de&sort_by=release_date.desc&vote_average.gte=7.50&vote_average.lte=abc",
			mediaType: tmdb.MediaTypeMovie,
			want: map[string]string{
				"page":                   "1",
				"sort_by":                "primary_release_date.desc",
				"with_genres":            "28",
				"primary_release_year":   "1999",
				"with_origin_country":    "DE",
				"with_original_language": "de",
				"vote_average.gte":       "7.5",
			},
		},
		{
			name:      "tv filters",
			target:    "/?year=2011&sort_by=release_date.asc&vote_average.lte=9&vote_average.gte=0",
			mediaType: tmdb.MediaTypeTV,
			want: map[string]string{
				"page":                "1",
				"sort_by":             "first_air_date.asc",
				"first_air_date_year": "2011",
				"vote_average.lte":    "9",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, tt.target)
			filters := discoverFilters(c, tt.mediaType, pageParam(c))

			got := make(map[string]string, len(filters))
			for k := range filters {
				got[k] = filters.Get(k)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", invalid("Invalid TMDb ID"), http.StatusBadRequest, "Invalid TMDb ID"},
		{"not found", notFound("Movie not found", &tmdb.APIError{StatusCode: http.StatusNotFound}), http.StatusNotFound, "Movie not found"},
		{"wrapped not found", fmt.Errorf("load: %w", &NotFoundError{Message: "Season not found"}), http.StatusNotFound, "Season not found"},
		{"rate limited", notFound("Movie not found", &tmdb.APIError{StatusCode: http.StatusTooManyRequests}), http.StatusTooManyRequests, msgRateLimited},
		{"upstream failure", &tmdb.APIError{StatusCode: http.StatusBadGateway}, http.StatusInternalServerError, msgInternal},
		{"transport failure", errors.New("context deadline exceeded"), http.StatusInternalServerError, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, "/api/test")
			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

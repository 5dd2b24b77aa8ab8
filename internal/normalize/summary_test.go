package normalize

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

type staticGenres map[string][]tmdb.Genre

func (s staticGenres) GenreList(_ context.Context, mediaType string) ([]tmdb.Genre, error) {
	genres, ok := s[mediaType]
	if !ok {
		return nil, errUnavailable
	}
	return genres, nil
}

func loadedGenres(t *testing.T) *GenreCache {
	t.Helper()
	c := NewGenreCache()
	require.NoError(t, c.Load(context.Background(), staticGenres{
		tmdb.MediaTypeMovie: {{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}},
		tmdb.MediaTypeTV:    {{ID: 18, Name: "Drama"}, {ID: 10765, Name: "Sci-Fi & Fantasy"}},
	}))
	return c
}

func TestFormatSummaryMapAndStructAgree(t *testing.T) {
	n := New(nil, loadedGenres(t))

	asStruct := tmdb.MediaSummary{
		ID:            1399,
		Name:          "Game of Thrones",
		PosterPath:    lo.ToPtr("/got.jpg"),
		FirstAirDate:  "2011-04-17",
		VoteAverage:   lo.ToPtr(8.4),
		VoteCount:     lo.ToPtr(int64(21000)),
		Popularity:    lo.ToPtr(369.6),
		Overview:      lo.ToPtr("Seven noble families fight..."),
		GenreIDs:      []int64{18, 10765, 999},
		OriginCountry: []string{"US"},
	}
	var asMap map[string]any
	data, err := json.Marshal(asStruct)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &asMap))

	fromStruct := n.FormatSummary(asStruct, tmdb.MediaTypeTV)
	fromMap := n.FormatSummary(asMap, tmdb.MediaTypeTV)
	require.NotNil(t, fromStruct)
	assert.Equal(t, fromStruct, fromMap)

	assert.Equal(t, "Game of Thrones", fromStruct.Title)
	assert.Equal(t, "2011", fromStruct.Year)
	assert.Equal(t, "8.4", fromStruct.Rating)
	assert.Equal(t, "Drama, Sci-Fi & Fantasy", fromStruct.Genres)
	assert.Equal(t, "", fromStruct.Backdrop)
	require.NotNil(t, fromStruct.OriginCountry)
	assert.Equal(t, "US", *fromStruct.OriginCountry)
	assert.Equal(t, "https://www.themoviedb.org/tv/1399", fromStruct.URL)
}

func TestFormatSummaryMissingFields(t *testing.T) {
	s := New(nil, nil).FormatSummary(map[string]any{}, tmdb.MediaTypeMovie)
	require.NotNil(t, s)

	assert.Equal(t, &MediaSummary{
		Title:       NotAvailable,
		Year:        NotAvailable,
		Rating:      NotAvailable,
		Genres:      NotAvailable,
		Plot:        NotAvailable,
		ReleaseDate: NotAvailable,
		URL:         NotAvailable,
		TMDBID:      NotAvailable,
		MediaType:   tmdb.MediaTypeMovie,
	}, s)

	out := toJSONMap(t, s)
	assert.Len(t, out, 13)
	assert.NotContains(t, out, "origin_country")

	tv := New(nil, nil).FormatSummary(map[string]any{}, tmdb.MediaTypeTV)
	require.NotNil(t, tv.OriginCountry)
	assert.Equal(t, NotAvailable, *tv.OriginCountry)
}

func TestFormatSummaries(t *testing.T) {
	n := New(nil, loadedGenres(t))
	items := []tmdb.MediaSummary{
		{ID: 348, MediaType: tmdb.MediaTypeMovie, Title: "Alien", GenreIDs: []int64{28}},
		{ID: 5, MediaType: tmdb.MediaTypePerson, Name: "Sigourney Weaver"},
		{ID: 1399, MediaType: tmdb.MediaTypeTV, Name: "Game of Thrones"},
	}

	mixed := n.FormatSummaries(items, "")
	require.Len(t, mixed, 2)
	assert.Equal(t, tmdb.MediaTypeMovie, mixed[0].MediaType)
	assert.Equal(t, "Action", mixed[0].Genres)
	assert.Equal(t, tmdb.MediaTypeTV, mixed[1].MediaType)

	forced := n.FormatSummaries(items, tmdb.MediaTypeMovie)
	assert.Len(t, forced, 3)
}

func TestGenreCache(t *testing.T) {
	c := NewGenreCache()
	assert.True(t, c.LoadedAt().IsZero())
	assert.Empty(t, c.Names(tmdb.MediaTypeMovie, []string{"28"}))

	c = loadedGenres(t)
	name, ok := c.Name(tmdb.MediaTypeMovie, "28")
	assert.True(t, ok)
	assert.Equal(t, "Action", name)
	assert.Equal(t, []string{"Drama", "Action"}, c.Names(tmdb.MediaTypeMovie, []string{"18", "1", "28"}))
	assert.Equal(t, map[string]int{tmdb.MediaTypeMovie: 2, tmdb.MediaTypeTV: 2}, c.Counts())
	assert.False(t, c.LoadedAt().IsZero())

	err := c.Load(context.Background(), staticGenres{tmdb.MediaTypeMovie: {{ID: 1, Name: "New"}}})
	require.Error(t, err)
	name, ok = c.Name(tmdb.MediaTypeMovie, "28")
	assert.True(t, ok, "a failed reload keeps the previous table")
	assert.Equal(t, "Action", name)
}

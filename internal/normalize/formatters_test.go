package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

func TestFormatPerson(t *testing.T) {
	p := FormatPerson(decode(t, `{
		"id": 287,
		"name": "Brad Pitt",
		"birthday": "1963-12-18",
		"biography": null,
		"profile_path": "/brad.jpg",
		"known_for_department": "Acting"
	}`))
	require.NotNil(t, p)

	assert.Equal(t, &Person{
		PersonID:           "287",
		Name:               "Brad Pitt",
		Birthday:           "1963-12-18",
		Biography:          NotAvailable,
		ProfilePath:        "https://image.tmdb.org/t/p/w185/brad.jpg",
		KnownForDepartment: "Acting",
	}, p)
}

func TestFormatMediaCredits(t *testing.T) {
	credits := decode(t, `{
		"cast": [
			{"id": 819, "name": "Edward Norton", "character": "The Narrator", "profile_path": "/en.jpg"},
			{"id": 1, "character": "Nameless"},
			{"id": 287, "name": "Brad Pitt", "character": "Tyler Durden"}
		],
		"crew": [
			{"id": 7467, "name": "David Fincher", "job": "Director", "department": "Directing"},
			{"id": 1, "name": "Someone", "job": "Producer", "department": "Production"}
		]
	}`)

	c := FormatMediaCredits(credits, decode(t, `{"title": "Fight Club"}`), tmdb.MediaTypeMovie, "550")
	require.NotNil(t, c)

	assert.Equal(t, "550", c.TMDBID)
	assert.Equal(t, "Fight Club", c.Title)
	require.Len(t, c.Cast, 2)
	assert.Equal(t, "Edward Norton", c.Cast[0].Name)
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/en.jpg", c.Cast[0].ProfilePath)
	assert.Equal(t, NotAvailable, c.Cast[0].KnownForDepartment)
	assert.Equal(t, "Tyler Durden", c.Cast[1].Character)
	require.Len(t, c.Directors, 1)
	assert.Equal(t, "David Fincher", c.Directors[0].Name)
	assert.Equal(t, "Directing", c.Directors[0].Department)
}

func TestFormatMediaCreditsTVCreators(t *testing.T) {
	details := decode(t, `{"name": "Breaking Bad", "created_by": [{"id": 66633, "name": "Vince Gilligan"}, {"id": 2}]}`)

	c := FormatMediaCredits(decode(t, `{"cast": [], "crew": []}`), details, tmdb.MediaTypeTV, "1396")
	require.NotNil(t, c)

	assert.Equal(t, "Breaking Bad", c.Title)
	assert.NotNil(t, c.Cast)
	assert.Empty(t, c.Cast)
	require.Len(t, c.Directors, 1)
	assert.Equal(t, &Director{
		Name:               "Vince Gilligan",
		TMDBID:             "66633",
		Department:         "Creator",
		KnownForDepartment: NotAvailable,
	}, c.Directors[0])

	movie := FormatMediaCredits(decode(t, `{}`), details, tmdb.MediaTypeMovie, "1")
	require.NotNil(t, movie)
	assert.Empty(t, movie.Directors)
	assert.Equal(t, NotAvailable, movie.Title)
}

func TestFormatCombinedCredits(t *testing.T) {
	credits := decode(t, `{
		"cast": [
			{"id": 550, "media_type": "movie", "title": "Fight Club", "character": "Tyler Durden", "popularity": 60, "release_date": "1999-10-15", "vote_average": 8.4},
			{"id": 9, "media_type": "tv", "name": "Talk Show", "popularity": 90, "first_air_date": "2001-01-01"}
		],
		"crew": [
			{"id": 10, "media_type": "movie", "title": "Produced", "job": "Producer", "popularity": 75},
			{"id": 11, "media_type": "person", "name": "Not media", "popularity": 100}
		]
	}`)

	c := FormatCombinedCredits(decode(t, `{"name": "Brad Pitt"}`), credits, "287")
	require.NotNil(t, c)

	assert.Equal(t, "287", c.PersonID)
	assert.Equal(t, "Brad Pitt", c.Name)
	require.Len(t, c.Credits, 3)

	assert.Equal(t, "Talk Show", c.Credits[0].Title)
	assert.Equal(t, roleCast, c.Credits[0].Role)
	assert.Equal(t, "2001", c.Credits[0].Year)
	assert.Equal(t, NotAvailable, *c.Credits[0].Character)
	assert.Nil(t, c.Credits[0].Job)

	assert.Equal(t, "Produced", c.Credits[1].Title)
	assert.Equal(t, roleCrew, c.Credits[1].Role)
	assert.Equal(t, "Producer", *c.Credits[1].Job)
	assert.Nil(t, c.Credits[1].Character)

	assert.Equal(t, "Fight Club", c.Credits[2].Title)
	assert.Equal(t, "8.4", c.Credits[2].VoteAverage)
	assert.Equal(t, "Tyler Durden", *c.Credits[2].Character)
}

func TestFormatCollection(t *testing.T) {
	n := New(nil, loadedGenres(t))
	col := n.FormatCollection(decode(t, `{
		"id": 10,
		"name": "Star Wars Collection",
		"overview": "An epic space-opera...",
		"poster_path": "/sw.jpg",
		"parts": [
			{"id": 181808, "title": "The Last Jedi", "release_date": "2017-12-13", "genre_ids": [28]},
			{"id": 11, "title": "A New Hope", "release_date": "1977-05-25"},
			{"id": 1, "title": "Untitled", "release_date": ""},
			{"id": 1891, "title": "The Empire Strikes Back", "release_date": "1980-05-20"}
		]
	}`))
	require.NotNil(t, col)

	assert.Equal(t, "10", col.TMDBID)
	assert.Equal(t, "Star Wars Collection", col.Name)
	assert.Equal(t, "", col.Backdrop)
	assert.Equal(t, 4, col.TotalResults)

	titles := make([]string, 0, len(col.Parts))
	for _, p := range col.Parts {
		titles = append(titles, p.Title)
		assert.Equal(t, tmdb.MediaTypeMovie, p.MediaType)
	}
	assert.Equal(t, []string{"Untitled", "A New Hope", "The Empire Strikes Back", "The Last Jedi"}, titles)
	assert.Equal(t, NotAvailable, col.Parts[0].ReleaseDate)
	assert.Equal(t, NotAvailable, col.Parts[0].Year)
	assert.Equal(t, "Action", col.Parts[3].Genres)
}

func TestFormatSeasons(t *testing.T) {
	s := FormatSeasons(decode(t, `{
		"name": "Game of Thrones",
		"seasons": [
			{"season_number": 0, "name": "Specials", "episode_count": 14, "air_date": "2010-12-05", "poster_path": "/s0.jpg"},
			{"season_number": 1, "name": "", "episode_count": 10, "vote_average": 8.3}
		]
	}`), "1399")
	require.NotNil(t, s)

	assert.Equal(t, "Game of Thrones", s.Title)
	assert.Equal(t, 2, s.TotalSeasons)
	assert.Equal(t, "Specials", s.Seasons[0].Name)
	assert.Equal(t, NotAvailable, s.Seasons[0].VoteAverage)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/s0.jpg", s.Seasons[0].Poster)
	assert.Equal(t, "Season 1", s.Seasons[1].Name)
	assert.Equal(t, NotAvailable, s.Seasons[1].AirDate)
	assert.Equal(t, "8.3", s.Seasons[1].VoteAverage)
}

func TestFormatSeason(t *testing.T) {
	s := FormatSeason(decode(t, `{
		"episodes": [
			{"episode_number": 1, "name": "Winter Is Coming", "runtime": 62, "still_path": "/e1.jpg", "vote_average": 7.9,
			 "guest_stars": [{"name": "Sean Bean"}, {"name": "Mark Addy"}]},
			{"episode_number": 2}
		]
	}`), 1)
	require.NotNil(t, s)

	assert.Equal(t, 1, s.SeasonNumber)
	assert.Equal(t, "Season 1", s.SeasonTitle)
	assert.Equal(t, 2, s.TotalEpisodes)
	assert.Equal(t, &Episode{
		EpisodeNumber: 1,
		Name:          "Winter Is Coming",
		AirDate:       NotAvailable,
		Overview:      NotAvailable,
		Poster:        "https://image.tmdb.org/t/p/original/e1.jpg",
		VoteAverage:   "7.9",
		Runtime:       "62 min",
		GuestStars:    "Sean Bean, Mark Addy",
	}, s.Episodes[0])
	assert.Equal(t, NotAvailable, s.Episodes[1].GuestStars)
	assert.Equal(t, NotAvailable, s.Episodes[1].Runtime)
}

func TestFormatKeywords(t *testing.T) {
	movie := FormatKeywords(decode(t, `{"id": 550, "keywords": [{"id": 825, "name": "support group"}, {"id": 1}, {"name": "no id"}]}`), tmdb.MediaTypeMovie, "550")
	require.NotNil(t, movie)
	assert.Equal(t, []*Keyword{{Name: "support group", TMDBID: "825"}}, movie.Keywords)

	tv := FormatKeywords(decode(t, `{"id": 1399, "results": [{"id": 6091, "name": "war"}]}`), tmdb.MediaTypeTV, "1399")
	require.NotNil(t, tv)
	assert.Equal(t, tmdb.MediaTypeTV, tv.MediaType)
	assert.Equal(t, []*Keyword{{Name: "war", TMDBID: "6091"}}, tv.Keywords)

	empty := FormatKeywords(decode(t, `{}`), tmdb.MediaTypeMovie, "1")
	require.NotNil(t, empty)
	assert.NotNil(t, empty.Keywords)
}

func TestBound(t *testing.T) {
	tests := []struct {
		name                   string
		results, pages         int
		wantResults, wantPages int
	}{
		{"within limits", 420, 21, 420, 21},
		{"too many results", 50000, 2500, 10000, 500},
		{"exact limits", 10000, 500, 10000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, p := Bound(tt.results, tt.pages)
			assert.Equal(t, tt.wantResults, r)
			assert.Equal(t, tt.wantPages, p)
		})
	}
}

func TestNewListing(t *testing.T) {
	l := NewListing(nil, 3, 50000, 2500)
	assert.Equal(t, "3 of 500", l.Page)
	assert.Equal(t, 10000, l.TotalResults)
	assert.Equal(t, 500, l.TotalPages)
	assert.NotNil(t, l.Results)

	empty := EmptyListing(2)
	assert.Equal(t, &Listing{Results: []*MediaSummary{}, Page: "2 of 1", TotalResults: 0, TotalPages: 1}, empty)
}

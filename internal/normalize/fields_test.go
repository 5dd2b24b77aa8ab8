package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

func TestRecordOf(t *testing.T) {
	poster := "/p.jpg"
	tests := []struct {
		name      string
		input     any
		field     string
		wantValue any
		wantOK    bool
	}{
		{"map", map[string]any{"title": "Alien"}, "title", "Alien", true},
		{"map null", map[string]any{"title": nil}, "title", nil, false},
		{"map missing", map[string]any{}, "title", nil, false},
		{"struct by json tag", tmdb.MediaSummary{Title: "Alien"}, "title", "Alien", true},
		{"struct pointer", &tmdb.MediaSummary{PosterPath: &poster}, "poster_path", "/p.jpg", true},
		{"struct nil pointer field", tmdb.MediaSummary{}, "poster_path", nil, false},
		{"struct nil slice", tmdb.MediaSummary{}, "genre_ids", nil, false},
		{"struct unknown field", tmdb.MediaSummary{}, "runtime", nil, false},
		{"nil", nil, "title", nil, false},
		{"typed nil pointer", (*tmdb.MediaSummary)(nil), "title", nil, false},
		{"scalar", 42, "title", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := RecordOf(tt.input).Lookup(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestJoinNames(t *testing.T) {
	many := make([]any, 0, 12)
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		many = append(many, map[string]any{"name": n})
	}

	tests := []struct {
		name string
		rec  MapRecord
		key  string
		want string
	}{
		{"missing", MapRecord{}, "name", NotAvailable},
		{"empty", MapRecord{"genres": []any{}}, "name", NotAvailable},
		{"all missing key", MapRecord{"genres": []any{map[string]any{"id": 1.0}}}, "name", NotAvailable},
		{"skips missing", MapRecord{"genres": []any{
			map[string]any{"name": "Drama"},
			map[string]any{"id": 2.0},
			map[string]any{"name": "Crime"},
		}}, "name", "Drama, Crime"},
		{"first ten", MapRecord{"genres": many}, "name", "a, b, c, d, e, f, g, h, i, j"},
		{"other key", MapRecord{"genres": []any{map[string]any{"english_name": "English"}}}, "english_name", "English"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinNames(tt.rec, "genres", tt.key))
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		rec  MapRecord
		want string
	}{
		{MapRecord{"release_date": "1999-10-15"}, "1999"},
		{MapRecord{"first_air_date": "2011-04-17"}, "2011"},
		{MapRecord{"release_date": "", "first_air_date": "2011-04-17"}, "2011"},
		{MapRecord{"release_date": "1999-10-15", "first_air_date": "2011-04-17"}, "1999"},
		{MapRecord{"release_date": ""}, NotAvailable},
		{MapRecord{}, NotAvailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, year(tt.rec))
	}
}

func TestFormatRating(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{8.438, "8.438"},
		{8.0, "8.0"},
		{0.0, "0.0"},
		{int64(7), "7.0"},
		{nil, NotAvailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRating(MapRecord{"vote_average": tt.value}, "vote_average"))
	}
}

func TestImages(t *testing.T) {
	r := MapRecord{"poster_path": "/p.jpg", "backdrop_path": "/b.jpg", "profile_path": "/f.jpg"}
	assert.Equal(t, "https://image.tmdb.org/t/p/original/p.jpg", posterURL(r, "poster_path"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/b.jpg", backdropURL(r, "backdrop_path"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/f.jpg", profileURL(r, "profile_path"))
	assert.Equal(t, "", posterURL(MapRecord{}, "poster_path"))
	assert.Equal(t, "", posterURL(MapRecord{"poster_path": nil}, "poster_path"))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "550", idString(MapRecord{"id": 550.0}))
	assert.Equal(t, "550", idString(RecordOf(tmdb.MediaSummary{ID: 550})))
	assert.Equal(t, NotAvailable, idString(MapRecord{}))
}

func TestRuntimeText(t *testing.T) {
	assert.Equal(t, "139 min", runtimeText(139))
	assert.Equal(t, NotAvailable, runtimeText(0))
}

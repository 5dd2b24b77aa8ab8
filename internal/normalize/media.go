package normalize

import (
	"context"
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

// Media is the full record of a movie or tv show.
type Media struct {
	Title               string  `json:"title"`
	Poster              string  `json:"poster"`
	Backdrop            string  `json:"backdrop"`
	Year                string  `json:"year"`
	Rating              string  `json:"rating"`
	VoteCount           int64   `json:"vote_count"`
	Popularity          float64 `json:"popularity"`
	ContentRating       string  `json:"content_rating"`
	Genres              string  `json:"genres"`
	Runtime             string  `json:"runtime"`
	Director            string  `json:"director"`
	Cast                string  `json:"cast"`
	Languages           string  `json:"languages"`
	Countries           string  `json:"countries"`
	ProductionCompanies string  `json:"production_companies"`
	Status              string  `json:"status"`
	Tagline             string  `json:"tagline"`
	ReleaseDate         string  `json:"release_date"`
	Plot                string  `json:"plot"`
	Trailer             string  `json:"trailer"`
	URL                 string  `json:"url"`
	TMDBID              string  `json:"tmdb_id"`
	IMDBID              string  `json:"imdb_id"`
	MediaType           string  `json:"media_type"`

	// Exactly one of them is set, matching MediaType.
	*MovieFields
	*TVFields
}

// MovieFields are only present on movies.
type MovieFields struct {
	Budget     int64          `json:"budget"`
	Revenue    int64          `json:"revenue"`
	Collection *CollectionRef `json:"collection,omitempty"`
}

// TVFields are only present on tv shows.
type TVFields struct {
	Networks         string `json:"networks"`
	NumberOfSeasons  int64  `json:"number_of_seasons"`
	NumberOfEpisodes int64  `json:"number_of_episodes"`
}

// CollectionRef is the collection a movie belongs to.
type CollectionRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Poster string `json:"poster"`
}

// detailFields must all be present, otherwise FormatMedia loads the full details first.
var detailFields = map[string][]string{
	tmdb.MediaTypeMovie: {"genres", "production_countries", "spoken_languages", "runtime"},
	tmdb.MediaTypeTV:    {"genres", "production_countries", "spoken_languages"},
}

// FormatMedia builds the full record of a movie or tv show.
//
// Credits (when includeCredits is set), videos and content ratings are loaded concurrently.
// A failed lookup only degrades its own field. A nil result means the record could not be formatted.
func (n *Normalizer) FormatMedia(ctx context.Context, item any, mediaType string, includeCredits bool) *Media {
	return safely("media", func() *Media {
		return n.formatMedia(ctx, RecordOf(item), mediaType, includeCredits)
	})
}

func (n *Normalizer) formatMedia(ctx context.Context, rec Record, mediaType string, includeCredits bool) *Media {
	id := idString(rec)
	canFetch := n.fetcher != nil && id != NotAvailable

	details := rec
	if canFetch && !hasAll(rec, detailFields[mediaType]) {
		full, err := n.fetcher.Details(ctx, mediaType, id)
		if err != nil {
			log.Warn("Failed to load full details", "mediaType", mediaType, "id", id, "error", err)
		} else {
			details = MapRecord(full)
		}
	}

	var (
		credits       Record
		trailer       = NotAvailable
		contentRating = NotAvailable
	)
	if canFetch {
		var g errgroup.Group
		if includeCredits {
			g.Go(func() error {
				credits = n.fetchOptional(ctx, "credits", mediaType, id, n.fetcher.Credits)
				return nil
			})
		}
		g.Go(func() error {
			if videos := n.fetchOptional(ctx, "videos", mediaType, id, n.fetcher.Videos); videos != nil {
				trailer = findTrailer(videos)
			}
			return nil
		})
		g.Go(func() error {
			if ratings := n.fetchOptional(ctx, "content ratings", mediaType, id, n.fetcher.ContentRatings); ratings != nil {
				contentRating = findContentRating(ratings, mediaType)
			}
			return nil
		})
		_ = g.Wait()
	}

	director, cast := NotAvailable, NotAvailable
	if credits != nil {
		director = findDirector(credits)
		cast = joinNames(credits, "cast", "name")
	}
	if director == NotAvailable && mediaType == tmdb.MediaTypeTV {
		director = joinNames(details, "created_by", "name")
	}

	m := &Media{
		Title:               firstText(details, "title", "name"),
		Poster:              posterURL(details, "poster_path"),
		Backdrop:            backdropURL(details, "backdrop_path"),
		Year:                year(details),
		Rating:              formatRating(details, "vote_average"),
		VoteCount:           integer(details, "vote_count"),
		Popularity:          number(details, "popularity"),
		ContentRating:       contentRating,
		Genres:              joinNames(details, "genres", "name"),
		Runtime:             runtimeText(mediaRuntime(details)),
		Director:            director,
		Cast:                cast,
		Languages:           joinNames(details, "spoken_languages", "english_name"),
		Countries:           joinNames(details, "production_countries", "name"),
		ProductionCompanies: joinNames(details, "production_companies", "name"),
		Status:              text(details, "status"),
		Tagline:             text(details, "tagline"),
		ReleaseDate:         firstText(details, "release_date", "first_air_date"),
		Plot:                text(details, "overview"),
		Trailer:             trailer,
		URL:                 webURL(mediaType, id),
		TMDBID:              id,
		IMDBID:              imdbID(details),
		MediaType:           mediaType,
	}

	switch mediaType {
	case tmdb.MediaTypeMovie:
		m.MovieFields = &MovieFields{
			Budget:  integer(details, "budget"),
			Revenue: integer(details, "revenue"),
		}
		if c, ok := nested(details, "belongs_to_collection"); ok {
			m.Collection = &CollectionRef{
				ID:     text(c, "id"),
				Name:   text(c, "name"),
				Poster: posterURL(c, "poster_path"),
			}
		}
	case tmdb.MediaTypeTV:
		m.TVFields = &TVFields{
			Networks:         joinNames(details, "networks", "name"),
			NumberOfSeasons:  integer(details, "number_of_seasons"),
			NumberOfEpisodes: integer(details, "number_of_episodes"),
		}
	}

	return m
}

// fetchOptional loads a sub-resource, returning nil when it is unavailable.
func (n *Normalizer) fetchOptional(
	ctx context.Context,
	what, mediaType, id string,
	fetch func(ctx context.Context, mediaType, id string) (map[string]any, error),
) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Failed to load sub-resource", "resource", what, "id", id, "error", fmt.Sprint(r))
			rec = nil
		}
	}()

	data, err := fetch(ctx, mediaType, id)
	if err != nil {
		log.Warn("Failed to load sub-resource", "resource", what, "mediaType", mediaType, "id", id, "error", err)
		return nil
	}
	return MapRecord(data)
}

func hasAll(r Record, fields []string) bool {
	for _, f := range fields {
		if _, ok := r.Lookup(f); !ok {
			return false
		}
	}
	return true
}

// mediaRuntime returns the runtime of a movie or the first episode runtime of a tv show.
func mediaRuntime(r Record) float64 {
	if rt, ok := num(r, "runtime"); ok {
		return rt
	}
	if v, ok := r.Lookup("episode_run_time"); ok {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.Len() > 0 {
			if rt, ok := toFloat(rv.Index(0).Interface()); ok {
				return rt
			}
		}
	}
	return 0
}

// imdbID returns the IMDb id, which lives in external_ids for tv shows.
func imdbID(r Record) string {
	if id, ok := str(r, "imdb_id"); ok {
		return id
	}
	if ext, ok := nested(r, "external_ids"); ok {
		if id, ok := str(ext, "imdb_id"); ok {
			return id
		}
	}
	return ""
}

func findDirector(credits Record) string {
	for _, crew := range records(credits, "crew") {
		if job, _ := str(crew, "job"); job == "Director" {
			if name, ok := str(crew, "name"); ok {
				return name
			}
		}
	}
	return NotAvailable
}

func findTrailer(videos Record) string {
	for _, v := range records(videos, "results") {
		typ, _ := str(v, "type")
		site, _ := str(v, "site")
		if typ != "Trailer" || site != "YouTube" {
			continue
		}
		if key, ok := str(v, "key"); ok {
			return youtubeURL + key
		}
	}
	return NotAvailable
}

// findContentRating returns the US certification of a movie or the US rating of a tv show.
func findContentRating(ratings Record, mediaType string) string {
	for _, r := range records(ratings, "results") {
		if country, _ := str(r, "iso_3166_1"); country != "US" {
			continue
		}
		if mediaType == tmdb.MediaTypeMovie {
			dates := records(r, "release_dates")
			if len(dates) == 0 {
				continue
			}
			if cert, ok := str(dates[0], "certification"); ok {
				return cert
			}
			continue
		}
		return text(r, "rating")
	}
	return NotAvailable
}

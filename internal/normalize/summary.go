package normalize

import (
	"strings"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

// MediaSummary is the light record used in listings and search results.
type MediaSummary struct {
	Title       string  `json:"title"`
	Poster      string  `json:"poster"`
	Backdrop    string  `json:"backdrop"`
	Year        string  `json:"year"`
	Rating      string  `json:"rating"`
	VoteCount   int64   `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	Genres      string  `json:"genres"`
	Plot        string  `json:"plot"`
	ReleaseDate string  `json:"release_date"`
	URL         string  `json:"url"`
	TMDBID      string  `json:"tmdb_id"`
	MediaType   string  `json:"media_type"`
	// OriginCountry is only present on tv shows.
	OriginCountry *string `json:"origin_country,omitempty"`
}

// FormatSummary builds the light record of a listing item without any upstream lookups.
// Genre names are resolved through the genre cache.
func (n *Normalizer) FormatSummary(item any, mediaType string) *MediaSummary {
	return safely("summary", func() *MediaSummary {
		return n.formatSummary(RecordOf(item), mediaType)
	})
}

func (n *Normalizer) formatSummary(r Record, mediaType string) *MediaSummary {
	id := idString(r)
	s := &MediaSummary{
		Title:       firstText(r, "title", "name"),
		Poster:      posterURL(r, "poster_path"),
		Backdrop:    backdropURL(r, "backdrop_path"),
		Year:        year(r),
		Rating:      formatRating(r, "vote_average"),
		VoteCount:   integer(r, "vote_count"),
		Popularity:  number(r, "popularity"),
		Genres:      n.genreNames(mediaType, stringList(r, "genre_ids")),
		Plot:        text(r, "overview"),
		ReleaseDate: strings.TrimSpace(firstText(r, "release_date", "first_air_date")),
		URL:         webURL(mediaType, id),
		TMDBID:      id,
		MediaType:   mediaType,
	}
	if mediaType == tmdb.MediaTypeTV {
		origin := NotAvailable
		if countries := stringList(r, "origin_country"); len(countries) > 0 {
			origin = strings.Join(countries, defaultJoiner)
		}
		s.OriginCountry = &origin
	}
	return s
}

// FormatSummaries formats a page of listing items, dropping the ones that could not be formatted.
// Items of other media types are skipped when mediaType is empty.
func (n *Normalizer) FormatSummaries(items []tmdb.MediaSummary, mediaType string) []*MediaSummary {
	out := make([]*MediaSummary, 0, len(items))
	for i := range items {
		itemType := mediaType
		if itemType == "" {
			itemType = items[i].MediaType
			if itemType != tmdb.MediaTypeMovie && itemType != tmdb.MediaTypeTV {
				continue
			}
		}
		if s := n.FormatSummary(&items[i], itemType); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (n *Normalizer) genreNames(mediaType string, ids []string) string {
	names := n.genres.Names(mediaType, ids)
	if len(names) == 0 {
		return NotAvailable
	}
	return strings.Join(names, defaultJoiner)
}

package normalize

import (
	"cmp"
	"slices"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

// Collection is a movie collection with its parts ordered by release date.
type Collection struct {
	TMDBID       string          `json:"tmdb_id"`
	Name         string          `json:"name"`
	Overview     string          `json:"overview"`
	Poster       string          `json:"poster"`
	Backdrop     string          `json:"backdrop"`
	Parts        []*MediaSummary `json:"parts"`
	TotalResults int             `json:"total_results"`
}

// FormatCollection builds a collection record. Parts without a release date sort first.
func (n *Normalizer) FormatCollection(item any) *Collection {
	return safely("collection", func() *Collection {
		r := RecordOf(item)

		parts := make([]*MediaSummary, 0)
		for _, part := range records(r, "parts") {
			if p := n.FormatCollectionPart(part); p != nil {
				parts = append(parts, p)
			}
		}
		slices.SortStableFunc(parts, func(a, b *MediaSummary) int {
			return cmp.Compare(sortableDate(a.ReleaseDate), sortableDate(b.ReleaseDate))
		})

		return &Collection{
			TMDBID:       idString(r),
			Name:         text(r, "name"),
			Overview:     text(r, "overview"),
			Poster:       posterURL(r, "poster_path"),
			Backdrop:     backdropURL(r, "backdrop_path"),
			Parts:        parts,
			TotalResults: len(parts),
		}
	})
}

// FormatCollectionPart builds the light record of a collection part. Parts are always movies.
func (n *Normalizer) FormatCollectionPart(item any) *MediaSummary {
	return n.FormatSummary(item, tmdb.MediaTypeMovie)
}

func sortableDate(d string) string {
	if d == NotAvailable {
		return fallbackDate
	}
	return d
}

package normalize

import (
	"github.com/samber/lo"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

type Keywords struct {
	TMDBID    string     `json:"tmdb_id"`
	MediaType string     `json:"media_type"`
	Keywords  []*Keyword `json:"keywords"`
}

type Keyword struct {
	Name   string `json:"name"`
	TMDBID string `json:"tmdb_id"`
}

// FormatKeywords builds the keyword list of a movie or tv show.
// Movies list them under "keywords", tv shows under "results".
func FormatKeywords(item any, mediaType, id string) *Keywords {
	return safely("keywords", func() *Keywords {
		r := RecordOf(item)

		field := "keywords"
		if mediaType == tmdb.MediaTypeTV {
			field = "results"
		}

		keywords := lo.FilterMap(records(r, field), func(kw Record, _ int) (*Keyword, bool) {
			name, hasName := str(kw, "name")
			kwID, hasID := str(kw, "id")
			if !hasName || !hasID {
				return nil, false
			}
			return &Keyword{Name: name, TMDBID: kwID}, true
		})

		return &Keywords{
			TMDBID:    id,
			MediaType: mediaType,
			Keywords:  keywords,
		}
	})
}

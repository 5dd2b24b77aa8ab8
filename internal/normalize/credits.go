package normalize

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

const (
	roleCast = "cast"
	roleCrew = "crew"
)

// MediaCredits lists the main cast and the directors of a movie or tv show.
type MediaCredits struct {
	TMDBID    string        `json:"tmdb_id"`
	Title     string        `json:"title"`
	MediaType string        `json:"media_type"`
	Cast      []*CastMember `json:"cast"`
	Directors []*Director   `json:"directors"`
}

type CastMember struct {
	Name               string `json:"name"`
	Character          string `json:"character"`
	TMDBID             string `json:"tmdb_id"`
	ProfilePath        string `json:"profile_path"`
	KnownForDepartment string `json:"known_for_department"`
}

type Director struct {
	Name               string `json:"name"`
	TMDBID             string `json:"tmdb_id"`
	ProfilePath        string `json:"profile_path"`
	Department         string `json:"department"`
	KnownForDepartment string `json:"known_for_department"`
}

// FormatMediaCredits builds the credits of a movie or tv show from its credits and details records.
// The first ten cast members are kept. TV shows without a directing credit list their creators instead.
func FormatMediaCredits(credits, details any, mediaType, id string) *MediaCredits {
	return safely("credits", func() *MediaCredits {
		c, d := RecordOf(credits), RecordOf(details)

		titleField := "title"
		if mediaType == tmdb.MediaTypeTV {
			titleField = "name"
		}

		cast := lo.FilterMap(lo.Slice(records(c, "cast"), 0, maxListNames), func(p Record, _ int) (*CastMember, bool) {
			name, ok := str(p, "name")
			if !ok {
				return nil, false
			}
			return &CastMember{
				Name:               name,
				Character:          text(p, "character"),
				TMDBID:             idString(p),
				ProfilePath:        profileURL(p, "profile_path"),
				KnownForDepartment: text(p, "known_for_department"),
			}, true
		})

		directors := lo.FilterMap(records(c, "crew"), func(p Record, _ int) (*Director, bool) {
			if job, _ := str(p, "job"); job != "Director" {
				return nil, false
			}
			return newDirector(p, text(p, "department")), true
		})

		if len(directors) == 0 && mediaType == tmdb.MediaTypeTV {
			directors = lo.FilterMap(records(d, "created_by"), func(p Record, _ int) (*Director, bool) {
				if _, ok := str(p, "name"); !ok {
					return nil, false
				}
				return newDirector(p, "Creator"), true
			})
		}

		return &MediaCredits{
			TMDBID:    id,
			Title:     text(d, titleField),
			MediaType: mediaType,
			Cast:      cast,
			Directors: directors,
		}
	})
}

func newDirector(p Record, department string) *Director {
	return &Director{
		Name:               text(p, "name"),
		TMDBID:             idString(p),
		ProfilePath:        profileURL(p, "profile_path"),
		Department:         department,
		KnownForDepartment: text(p, "known_for_department"),
	}
}

// CombinedCredits lists every movie and tv credit of a person.
type CombinedCredits struct {
	PersonID string    `json:"person_id"`
	Name     string    `json:"name"`
	Credits  []*Credit `json:"credits"`
}

// Credit is a single cast or crew credit. Character is set for cast credits, Job for crew credits.
type Credit struct {
	Title       string  `json:"title"`
	MediaType   string  `json:"media_type"`
	TMDBID      string  `json:"tmdb_id"`
	Poster      string  `json:"poster"`
	Backdrop    string  `json:"backdrop"`
	Role        string  `json:"role"`
	ReleaseDate string  `json:"release_date"`
	Year        string  `json:"year"`
	VoteAverage string  `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	Character   *string `json:"character,omitempty"`
	Job         *string `json:"job,omitempty"`
}

// FormatCombinedCredits merges the cast and crew credits of a person, most popular first.
// Credits that are neither movies nor tv shows are dropped.
func FormatCombinedCredits(person, credits any, personID string) *CombinedCredits {
	return safely("combined credits", func() *CombinedCredits {
		p, c := RecordOf(person), RecordOf(credits)

		type entry struct {
			rec  Record
			role string
		}
		var entries []entry
		for _, rec := range records(c, "cast") {
			entries = append(entries, entry{rec, roleCast})
		}
		for _, rec := range records(c, "crew") {
			entries = append(entries, entry{rec, roleCrew})
		}
		slices.SortStableFunc(entries, func(a, b entry) int {
			return cmp.Compare(number(b.rec, "popularity"), number(a.rec, "popularity"))
		})

		out := make([]*Credit, 0, len(entries))
		for _, e := range entries {
			mediaType, _ := str(e.rec, "media_type")
			if mediaType != tmdb.MediaTypeMovie && mediaType != tmdb.MediaTypeTV {
				continue
			}
			credit := &Credit{
				Title:       firstText(e.rec, "title", "name"),
				MediaType:   mediaType,
				TMDBID:      idString(e.rec),
				Poster:      posterURL(e.rec, "poster_path"),
				Backdrop:    backdropURL(e.rec, "backdrop_path"),
				Role:        e.role,
				ReleaseDate: firstText(e.rec, "release_date", "first_air_date"),
				Year:        year(e.rec),
				VoteAverage: formatRating(e.rec, "vote_average"),
				VoteCount:   integer(e.rec, "vote_count"),
				Popularity:  number(e.rec, "popularity"),
			}
			if e.role == roleCast {
				credit.Character = lo.ToPtr(text(e.rec, "character"))
			} else {
				credit.Job = lo.ToPtr(text(e.rec, "job"))
			}
			out = append(out, credit)
		}

		return &CombinedCredits{
			PersonID: personID,
			Name:     text(p, "name"),
			Credits:  out,
		}
	})
}

package normalize

import (
	"strconv"
)

// SeasonList is the season overview of a tv show.
type SeasonList struct {
	TMDBID       string           `json:"tmdb_id"`
	Title        string           `json:"title"`
	TotalSeasons int              `json:"total_seasons"`
	Seasons      []*SeasonSummary `json:"seasons"`
}

type SeasonSummary struct {
	SeasonNumber int64  `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int64  `json:"episode_count"`
	AirDate      string `json:"air_date"`
	Poster       string `json:"poster"`
	Overview     string `json:"overview"`
	VoteAverage  string `json:"vote_average"`
}

// Season is a single season with its episodes.
type Season struct {
	SeasonNumber  int        `json:"season_number"`
	SeasonTitle   string     `json:"season_title"`
	Episodes      []*Episode `json:"episodes"`
	TotalEpisodes int        `json:"total_episodes"`
}

type Episode struct {
	EpisodeNumber int64  `json:"episode_number"`
	Name          string `json:"name"`
	AirDate       string `json:"air_date"`
	Overview      string `json:"overview"`
	Poster        string `json:"poster"`
	VoteAverage   string `json:"vote_average"`
	Runtime       string `json:"runtime"`
	GuestStars    string `json:"guest_stars"`
}

// FormatSeasons builds the season overview from the details of a tv show.
func FormatSeasons(details any, id string) *SeasonList {
	return safely("seasons", func() *SeasonList {
		r := RecordOf(details)

		seasons := make([]*SeasonSummary, 0)
		for _, s := range records(r, "seasons") {
			seasonNumber := integer(s, "season_number")
			name, ok := str(s, "name")
			if !ok {
				name = seasonName(seasonNumber)
			}
			seasons = append(seasons, &SeasonSummary{
				SeasonNumber: seasonNumber,
				Name:         name,
				EpisodeCount: integer(s, "episode_count"),
				AirDate:      text(s, "air_date"),
				Poster:       posterURL(s, "poster_path"),
				Overview:     text(s, "overview"),
				VoteAverage:  formatRating(s, "vote_average"),
			})
		}

		return &SeasonList{
			TMDBID:       id,
			Title:        text(r, "name"),
			TotalSeasons: len(seasons),
			Seasons:      seasons,
		}
	})
}

// FormatSeason builds a season record with all of its episodes.
func FormatSeason(item any, seasonNumber int) *Season {
	return safely("season", func() *Season {
		r := RecordOf(item)

		title, ok := str(r, "name")
		if !ok {
			title = seasonName(int64(seasonNumber))
		}

		episodes := make([]*Episode, 0)
		for _, ep := range records(r, "episodes") {
			if e := FormatEpisode(ep); e != nil {
				episodes = append(episodes, e)
			}
		}

		return &Season{
			SeasonNumber:  seasonNumber,
			SeasonTitle:   title,
			Episodes:      episodes,
			TotalEpisodes: len(episodes),
		}
	})
}

// FormatEpisode builds the record of a single episode.
func FormatEpisode(item any) *Episode {
	return safely("episode", func() *Episode {
		r := RecordOf(item)
		return &Episode{
			EpisodeNumber: integer(r, "episode_number"),
			Name:          text(r, "name"),
			AirDate:       text(r, "air_date"),
			Overview:      text(r, "overview"),
			Poster:        posterURL(r, "still_path"),
			VoteAverage:   formatRating(r, "vote_average"),
			Runtime:       runtimeText(number(r, "runtime")),
			GuestStars:    joinNames(r, "guest_stars", "name"),
		}
	})
}

func seasonName(n int64) string {
	return "Season " + strconv.FormatInt(n, 10)
}

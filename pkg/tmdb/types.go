package tmdb

const (
	MediaTypeMovie  = "movie"
	MediaTypeTV     = "tv"
	MediaTypePerson = "person"
)

// Page is a single page of a TMDb listing.
type Page struct {
	Page         int            `json:"page"`
	Results      []MediaSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// MediaSummary is a movie, tv show or person as returned in listings and searches.
// Optional values are pointers so a missing value can be told apart from a zero value.
type MediaSummary struct {
	ID            int64    `json:"id"`
	MediaType     string   `json:"media_type,omitempty"`
	Title         string   `json:"title,omitempty"`
	Name          string   `json:"name,omitempty"`
	PosterPath    *string  `json:"poster_path,omitempty"`
	BackdropPath  *string  `json:"backdrop_path,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	FirstAirDate  string   `json:"first_air_date,omitempty"`
	VoteAverage   *float64 `json:"vote_average,omitempty"`
	VoteCount     *int64   `json:"vote_count,omitempty"`
	Popularity    *float64 `json:"popularity,omitempty"`
	Overview      *string  `json:"overview,omitempty"`
	GenreIDs      []int64  `json:"genre_ids,omitempty"`
	OriginCountry []string `json:"origin_country,omitempty"`
}

// Genre is a single entry of the genre taxonomy.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

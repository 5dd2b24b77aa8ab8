package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jon4hz/reelcache/internal/config"
)

// Client represents a TMDb API client.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// New creates a new TMDb API client.
func New(cfg *config.TMDBConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// APIError is returned for every non-2xx response of the TMDb API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDb API request failed with status %d: %s", e.StatusCode, e.Body)
}

// StatusCode returns the upstream status code of err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether TMDb answered with 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRateLimited reports whether TMDb answered with 429.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// doRequest performs a GET request against the TMDb API and decodes the JSON body into out.
func (c *Client) doRequest(ctx context.Context, endpoint string, queryParams url.Values, out any) error {
	if queryParams == nil {
		queryParams = url.Values{}
	}
	queryParams.Set("api_key", c.apiKey)
	if c.language != "" && queryParams.Get("language") == "" {
		queryParams.Set("language", c.language)
	}

	reqURL := c.baseURL + endpoint + "?" + queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding %s response: %w", endpoint, err)
	}
	return nil
}

// getObject fetches a single JSON object as a generic map.
func (c *Client) getObject(ctx context.Context, endpoint string, queryParams url.Values) (map[string]any, error) {
	var obj map[string]any
	if err := c.doRequest(ctx, endpoint, queryParams, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

// Details returns the full details of a movie or tv show.
func (c *Client) Details(ctx context.Context, mediaType, id string) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/%s/%s", mediaType, id), nil)
}

// Credits returns the cast and crew of a movie or tv show.
func (c *Client) Credits(ctx context.Context, mediaType, id string) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/%s/%s/credits", mediaType, id), nil)
}

// Videos returns the videos (trailers, teasers, ...) of a movie or tv show.
func (c *Client) Videos(ctx context.Context, mediaType, id string) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/%s/%s/videos", mediaType, id), nil)
}

// ContentRatings returns the release dates of a movie or the content ratings of a tv show.
func (c *Client) ContentRatings(ctx context.Context, mediaType, id string) (map[string]any, error) {
	endpoint := fmt.Sprintf("/%s/%s/content_ratings", mediaType, id)
	if mediaType == MediaTypeMovie {
		endpoint = fmt.Sprintf("/%s/%s/release_dates", mediaType, id)
	}
	return c.getObject(ctx, endpoint, nil)
}

// Keywords returns the keywords of a movie or tv show.
func (c *Client) Keywords(ctx context.Context, mediaType, id string) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/%s/%s/keywords", mediaType, id), nil)
}

// Collection returns a movie collection including its parts.
func (c *Client) Collection(ctx context.Context, id string) (map[string]any, error) {
	return c.getObject(ctx, "/collection/"+id, nil)
}

// Person returns the details of a person.
func (c *Client) Person(ctx context.Context, id string) (map[string]any, error) {
	return c.getObject(ctx, "/person/"+id, nil)
}

// PersonCombinedCredits returns the movie and tv credits of a person.
func (c *Client) PersonCombinedCredits(ctx context.Context, id string) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/person/%s/combined_credits", id), nil)
}

// Season returns a single season of a tv show including its episodes.
func (c *Client) Season(ctx context.Context, id string, seasonNumber int) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/tv/%s/season/%d", id, seasonNumber), nil)
}

// Latest returns the most recently created movie or tv show.
func (c *Client) Latest(ctx context.Context, mediaType string) (map[string]any, error) {
	return c.getObject(ctx, fmt.Sprintf("/%s/latest", mediaType), nil)
}

// List returns a page of one of the predefined lists (popular, top_rated, upcoming, on_the_air).
func (c *Client) List(ctx context.Context, mediaType, list string, page int) (*Page, error) {
	var p Page
	if err := c.doRequest(ctx, fmt.Sprintf("/%s/%s", mediaType, list), pageParams(page), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Trending returns a page of trending movies or tv shows for the given time window (day, week).
func (c *Client) Trending(ctx context.Context, mediaType, timeWindow string, page int) (*Page, error) {
	var p Page
	if err := c.doRequest(ctx, fmt.Sprintf("/trending/%s/%s", mediaType, timeWindow), pageParams(page), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Discover returns a page of movies or tv shows matching the given filters.
func (c *Client) Discover(ctx context.Context, mediaType string, filters url.Values) (*Page, error) {
	params := url.Values{}
	for k, v := range filters {
		params[k] = append([]string(nil), v...)
	}
	var p Page
	if err := c.doRequest(ctx, "/discover/"+mediaType, params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchMulti searches movies, tv shows and people in a single request.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("query", query)
	var p Page
	if err := c.doRequest(ctx, "/search/multi", params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GenreList returns the official genres for movies or tv shows.
func (c *Client) GenreList(ctx context.Context, mediaType string) ([]Genre, error) {
	var resp struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.doRequest(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

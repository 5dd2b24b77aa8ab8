package cache

import (
	"net/url"
	"slices"
	"strings"
)

// Key identifies a cached response. The cache key and the statistics label
// are both rendered from it, so they can never drift apart.
type Key struct {
	// Endpoint is the logical endpoint name, e.g. "details" or "popular".
	Endpoint string
	// MediaType is "movie", "tv" or empty for endpoints without a media type.
	MediaType string
	// IDs are the path identifiers of the request, e.g. the TMDb id and season number.
	IDs []string
	// Params are the query parameters that change the response.
	Params url.Values
}

// String renders the cache key, e.g. "details:movie:550" or "popular:tv?page=2".
// Query parameters are sorted by key and value.
func (k Key) String() string {
	parts := make([]string, 0, 2+len(k.IDs))
	for _, p := range append([]string{k.Endpoint, k.MediaType}, k.IDs...) {
		if p != "" {
			parts = append(parts, p)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, ":"))
	if q := canonicalQuery(k.Params); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	return b.String()
}

// Label returns the statistics label of the key, e.g. "movie/details".
// Requests for different ids or pages of the same endpoint share a label.
func (k Key) Label() string {
	if k.MediaType == "" {
		return k.Endpoint
	}
	return k.MediaType + "/" + k.Endpoint
}

func canonicalQuery(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	sorted := make(url.Values, len(params))
	for k, v := range params {
		if len(v) == 0 {
			continue
		}
		vals := slices.Clone(v)
		slices.Sort(vals)
		sorted[k] = vals
	}
	// Encode sorts by key
	return sorted.Encode()
}

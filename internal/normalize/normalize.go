// Package normalize maps variable-shape TMDb records into the stable response schema.
//
// Every formatter accepts a decoded JSON object, a typed struct from pkg/tmdb or a Record
// and treats them the same way. Missing values are replaced by sentinels:
// NotAvailable for text, "" for images and 0 for numbers.
package normalize

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/log"
)

// Fetcher loads the records FormatMedia needs in addition to the one it was given.
// *tmdb.Client implements it.
type Fetcher interface {
	Details(ctx context.Context, mediaType, id string) (map[string]any, error)
	Credits(ctx context.Context, mediaType, id string) (map[string]any, error)
	Videos(ctx context.Context, mediaType, id string) (map[string]any, error)
	ContentRatings(ctx context.Context, mediaType, id string) (map[string]any, error)
}

// Normalizer holds the collaborators of the formatters that need more than the record itself.
type Normalizer struct {
	fetcher Fetcher
	genres  *GenreCache
}

// New creates a new Normalizer.
func New(fetcher Fetcher, genres *GenreCache) *Normalizer {
	if genres == nil {
		genres = NewGenreCache()
	}
	return &Normalizer{
		fetcher: fetcher,
		genres:  genres,
	}
}

// Genres returns the genre lookup cache used for light records.
func (n *Normalizer) Genres() *GenreCache {
	return n.genres
}

// safely runs fn and turns a panic into a logged nil result.
func safely[T any](what string, fn func() *T) (out *T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Failed to format record", "type", what, "error", fmt.Sprint(r))
			log.Debug("Formatter stack", "type", what, "stack", string(debug.Stack()))
			out = nil
		}
	}()
	return fn()
}

package normalize

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

// GenreLister loads the genre taxonomy of a media type.
type GenreLister interface {
	GenreList(ctx context.Context, mediaType string) ([]tmdb.Genre, error)
}

// GenreCache maps genre ids to names per media type.
// Reads are lock free, Load swaps the whole table at once.
type GenreCache struct {
	current atomic.Pointer[genreTable]
}

type genreTable struct {
	byType   map[string]map[string]string
	loadedAt time.Time
}

// NewGenreCache returns an empty cache. Every lookup misses until Load succeeds.
func NewGenreCache() *GenreCache {
	c := &GenreCache{}
	c.current.Store(&genreTable{byType: map[string]map[string]string{}})
	return c
}

// Load fetches the movie and tv genres and replaces the cached table.
// On error the previous table is kept.
func (c *GenreCache) Load(ctx context.Context, lister GenreLister) error {
	mediaTypes := []string{tmdb.MediaTypeMovie, tmdb.MediaTypeTV}
	tables := make([]map[string]string, len(mediaTypes))

	g, ctx := errgroup.WithContext(ctx)
	for i, mediaType := range mediaTypes {
		g.Go(func() error {
			genres, err := lister.GenreList(ctx, mediaType)
			if err != nil {
				return fmt.Errorf("failed to load %s genres: %w", mediaType, err)
			}
			table := make(map[string]string, len(genres))
			for _, genre := range genres {
				table[strconv.FormatInt(genre.ID, 10)] = genre.Name
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	next := &genreTable{
		byType:   make(map[string]map[string]string, len(mediaTypes)),
		loadedAt: time.Now(),
	}
	for i, mediaType := range mediaTypes {
		next.byType[mediaType] = tables[i]
	}
	c.current.Store(next)

	log.Info("Loaded genre cache", "movie", len(tables[0]), "tv", len(tables[1]))
	return nil
}

// Name returns the name of a genre id.
func (c *GenreCache) Name(mediaType, id string) (string, bool) {
	name, ok := c.current.Load().byType[mediaType][id]
	return name, ok
}

// Names resolves ids in order, skipping unknown ones.
func (c *GenreCache) Names(mediaType string, ids []string) []string {
	table := c.current.Load().byType[mediaType]
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := table[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Counts returns the number of cached genres per media type.
func (c *GenreCache) Counts() map[string]int {
	t := c.current.Load()
	counts := make(map[string]int, len(t.byType))
	for mediaType, table := range t.byType {
		counts[mediaType] = len(table)
	}
	return counts
}

// LoadedAt returns when the cache was last loaded. It is zero if it never was.
func (c *GenreCache) LoadedAt() time.Time {
	return c.current.Load().loadedAt
}

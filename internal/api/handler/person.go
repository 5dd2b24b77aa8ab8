package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/internal/cache"
	"github.com/jon4hz/reelcache/internal/normalize"
)

const msgPersonNotFound = "Person not found"

// GetPerson returns the profile of a person. It is never cached.
func (h *Handler) GetPerson(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "Invalid person ID"); err != nil {
		respondError(c, err)
		return
	}

	h.uncached(c, func(ctx context.Context) (any, error) {
		data, err := h.tmdb.Person(ctx, id)
		if err != nil {
			return nil, notFound(msgPersonNotFound, err)
		}
		person := normalize.FormatPerson(data)
		if person == nil {
			return nil, &NotFoundError{Message: msgPersonNotFound}
		}
		return person, nil
	})
}

// GetPersonCombinedCredits returns the movie and tv credits of a person, most popular first.
func (h *Handler) GetPersonCombinedCredits(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "Invalid person ID"); err != nil {
		respondError(c, err)
		return
	}

	key := cache.Key{Endpoint: "combined_credits", IDs: []string{id}}
	h.cached(c, key, h.ttl.Credits, func(ctx context.Context) (any, error) {
		person, err := h.tmdb.Person(ctx, id)
		if err != nil {
			return nil, notFound(msgPersonNotFound, err)
		}
		credits, err := h.tmdb.PersonCombinedCredits(ctx, id)
		if err != nil {
			return nil, notFound("Credits not found", err)
		}
		out := normalize.FormatCombinedCredits(person, credits, id)
		if out == nil {
			return nil, &NotFoundError{Message: "Credits not found"}
		}
		return out, nil
	})
}

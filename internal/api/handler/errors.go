package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/jon4hz/reelcache/pkg/tmdb"
)

const (
	msgRateLimited = "Rate limit exceeded, try again later"
	msgInternal    = "Internal server error"
)

// ValidationError is answered with 400 before any cache or upstream access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError is answered with 404 and its message.
type NotFoundError struct {
	Message string
	Err     error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// notFound turns an upstream 404 into a NotFoundError with message. Other errors pass unchanged.
func notFound(message string, err error) error {
	if tmdb.IsNotFound(err) {
		return &NotFoundError{Message: message, Err: err}
	}
	return err
}

// respondError maps err to its status code and writes {"error": message}.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		log.Warn("Rejected request", "path", c.Request.URL.Path, "reason", validationErr.Message)
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		log.Warn("Not found", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	case tmdb.IsRateLimited(err):
		log.Error("TMDb rate limit exceeded", "path", c.Request.URL.Path)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgRateLimited})
	default:
		log.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

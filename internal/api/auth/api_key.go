package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// HeaderAPIKey carries the admin API key.
const HeaderAPIKey = "X-API-Key"

// APIKeyProvider guards routes with a static API key.
type APIKeyProvider struct {
	apiKey []byte
}

// NewAPIKeyProvider creates a new API key provider.
func NewAPIKeyProvider(apiKey string) *APIKeyProvider {
	return &APIKeyProvider{
		apiKey: []byte(apiKey),
	}
}

// RequireAuth returns a middleware that rejects requests without the configured API key.
func (ap *APIKeyProvider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := []byte(c.GetHeader(HeaderAPIKey))
		if len(ap.apiKey) == 0 || subtle.ConstantTimeCompare(key, ap.apiKey) != 1 {
			log.Warn("Rejected admin request", "path", c.Request.URL.Path, "remote", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}

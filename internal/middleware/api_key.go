package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "todoey/internal/errors"
)

// APIKeyHeader carries the shared secret on protected routes.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth validates the X-API-Key header against apiKey. An empty apiKey
// leaves the routes open, which is the default for a single-user local store.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWith(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/logger"
)

// ErrorHandler is the centralized fault path. Guards and handlers
// record unexpected failures with c.Error and abort; this middleware
// logs the detail and answers with a generic body so store and hash
// internals never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logger.Error("request failed", map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"error":  c.Errors.Last().Error(),
		})

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireSession adapts the net/http session guard to Gin, keeping
// auth decisions session-based and transport-agnostic.
func GinRequireSession(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		// Wrap Gin request with the net/http session guard
		handler := auth.RequireSession(next)

		// Execute middleware chain
		handler.ServeHTTP(c.Writer, c.Request)

		// If the guard already handled the response, stop the Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}

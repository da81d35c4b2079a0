package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/logger"
	"session-auth-service/internal/session"
)

// Logout destroys the caller's session when one is live and clears the
// cookie either way. It is idempotent: calling it without a session is
// not an error.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		c.JSON(http.StatusOK, gin.H{"message": "no session found"})
		return
	}

	sess, err := h.sessions.Get(c.Request.Context(), cookie.Value)
	if err != nil {
		h.fail(c, err)
		return
	}
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{"message": "no session found"})
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), sess.SessionID); err != nil {
		h.fail(c, err)
		return
	}

	session.ClearCookie(c.Writer, h.cookieOpts)

	logger.Info("logout", map[string]any{
		"user_id": sess.UserID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/auth/guard"
	"session-auth-service/internal/auth/password"
	"session-auth-service/internal/logger"
	"session-auth-service/internal/session"
)

// Login runs after the username-resolution guard, which attaches the
// matching user record. A fresh session is created on every successful
// login; earlier sessions for the same user stay live.
func (h *Handler) Login(c *gin.Context) {
	creds := guard.CredentialsFrom(c)

	current, ok := guard.CurrentUser(c)
	if !ok {
		h.fail(c, fmt.Errorf("login: no resolved user on request"))
		return
	}

	if !password.Verify(creds.Password, current.PasswordHash) {
		// TODO: wrong-password responses answer 200 while unknown
		// usernames answer 401; align on 401 once clients stop keying
		// off the message body.
		c.JSON(http.StatusOK, gin.H{"message": "invalid credentials"})
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		h.fail(c, err)
		return
	}

	now := time.Now()
	sess := session.Session{
		SessionID: sessionID,
		UserID:    current.UserID,
		Username:  current.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(h.sessionTTL),
	}

	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		h.fail(c, err)
		return
	}

	session.SetCookie(c.Writer, sessionID, sess.ExpiresAt, h.cookieOpts)

	logger.Info("login succeeded", map[string]any{
		"user_id": current.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("welcome %s!", current.Username),
	})
}

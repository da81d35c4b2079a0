package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/auth/guard"
	"session-auth-service/internal/session"
	"session-auth-service/internal/user"
)

// Handler orchestrates the register, login, and logout flows. Each
// route runs its guard chain first; a rejection there means the
// handler never executes.
type Handler struct {
	users      user.Store
	sessions   session.Store
	sessionTTL time.Duration
	cookieOpts session.CookieOptions
}

func NewHandler(
	users user.Store,
	sessions session.Store,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		cookieOpts: session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	auth := r.Group("/api/auth")

	auth.POST("/register",
		guard.BindCredentials(),
		guard.PasswordShape(),
		guard.UsernameAvailable(h.users),
		h.Register,
	)

	auth.POST("/login",
		guard.BindCredentials(),
		guard.UsernameExists(h.users),
		h.Login,
	)

	auth.GET("/logout", h.Logout)
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/auth/guard"
	"session-auth-service/internal/auth/password"
)

// Register runs after the password-shape and username-availability
// guards. A duplicate insert can still happen when two registrations
// race; the store's uniqueness constraint surfaces that as a fault.
func (h *Handler) Register(c *gin.Context) {
	creds := guard.CredentialsFrom(c)

	digest, err := password.Hash(creds.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.users.Insert(c.Request.Context(), creds.Username, digest)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

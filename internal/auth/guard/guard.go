// Package guard implements the ordered credential checks that run
// ahead of the auth handlers. Each check either lets the request
// proceed, possibly attaching resolved context, or short-circuits the
// chain with a fixed status and message. Store failures are never
// masked as rejections; they go to the centralized error path.
package guard

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/user"
)

const (
	credentialsKey = "guard.credentials"
	currentUserKey = "guard.currentUser"
)

// Credentials is the claimed identity submitted with register and
// login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Rejection is the typed outcome of a failed check.
type Rejection struct {
	Status  int
	Message string
}

// Check inspects the in-flight request. A non-nil Rejection stops the
// chain with its status/message; a non-nil error is an internal fault.
type Check func(c *gin.Context) (*Rejection, error)

// Middleware adapts a Check into a gin handler. The first rejection
// aborts the remaining chain and the route handler.
func Middleware(check Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		rejection, err := check(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if rejection != nil {
			c.AbortWithStatusJSON(rejection.Status, gin.H{"message": rejection.Message})
			return
		}
		c.Next()
	}
}

// BindCredentials parses the request body once and stashes it for the
// checks and handlers downstream.
func BindCredentials() gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds Credentials
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
			return
		}
		c.Set(credentialsKey, creds)
		c.Next()
	}
}

// CredentialsFrom returns the credentials bound by BindCredentials.
func CredentialsFrom(c *gin.Context) Credentials {
	creds, _ := c.Get(credentialsKey)
	cr, _ := creds.(Credentials)
	return cr
}

// CurrentUser returns the user record attached by UsernameExists.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

// PasswordShape rejects absent or too-short passwords. Length is
// counted in characters, not bytes, so multibyte passwords measure the
// way users type them.
func PasswordShape() gin.HandlerFunc {
	return Middleware(func(c *gin.Context) (*Rejection, error) {
		creds := CredentialsFrom(c)
		if utf8.RuneCountInString(creds.Password) < 3 {
			return &Rejection{
				Status:  http.StatusUnprocessableEntity,
				Message: "password too short",
			}, nil
		}
		return nil, nil
	})
}

// UsernameAvailable rejects registrations for a username that already
// has a record.
func UsernameAvailable(store user.Store) gin.HandlerFunc {
	return Middleware(func(c *gin.Context) (*Rejection, error) {
		creds := CredentialsFrom(c)

		existing, err := store.FindOne(c.Request.Context(), map[string]any{
			"username": creds.Username,
		})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &Rejection{
				Status:  http.StatusUnprocessableEntity,
				Message: "username taken",
			}, nil
		}
		return nil, nil
	})
}

// UsernameExists resolves the submitted username to a stored record and
// attaches it for the login handler. Unknown usernames are rejected
// with the same message a wrong password produces.
func UsernameExists(store user.Store) gin.HandlerFunc {
	return Middleware(func(c *gin.Context) (*Rejection, error) {
		creds := CredentialsFrom(c)

		resolved, err := store.FindOne(c.Request.Context(), map[string]any{
			"username": creds.Username,
		})
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			return &Rejection{
				Status:  http.StatusUnauthorized,
				Message: "invalid credentials",
			}, nil
		}

		c.Set(currentUserKey, resolved)
		return nil, nil
	})
}

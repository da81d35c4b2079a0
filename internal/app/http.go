package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"session-auth-service/internal/auth/handler"
	"session-auth-service/internal/config"
	"session-auth-service/internal/middleware"
	"session-auth-service/internal/session"
	"session-auth-service/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	userStore := user.NewPostgresStore(infra.DB)

	authHandler := handler.NewHandler(
		userStore,
		sessionStore,
		cfg.SessionTTL,
	)

	sessionGuard := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireSession(sessionGuard))

	api.GET("/me", func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		c.JSON(200, gin.H{
			"user_id":  sess.UserID,
			"username": sess.Username,
		})
	})

	api.GET("/users", func(c *gin.Context) {
		users, err := userStore.List(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.JSON(200, users)
	})

	api.GET("/users/:id", func(c *gin.Context) {
		found, err := userStore.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if found == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(200, found)
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"muroom/internal/handlers"
	"muroom/internal/middleware"
	"muroom/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tokens *services.TokenService,
) *gin.Engine {
	// credential endpoints share a strict per-IP budget
	strict := middleware.RateLimitByIP(middleware.StrictLimit)

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/welcome", authHandler.Welcome)
	r.POST("/pre-register", strict, authHandler.PreRegister)
	r.POST("/register", authHandler.Register)
	r.POST("/login", strict, authHandler.Login)
	r.POST("/forgot-password", strict, authHandler.ForgotPassword)
	r.POST("/access-account", strict, authHandler.AccessAccount)
	r.GET("/profile/:username", userHandler.PublicProfile)

	// ---- protected
	auth := r.Group("/", middleware.RequireLogin(tokens))
	{
		auth.GET("/refresh-token", authHandler.RefreshToken)
		auth.GET("/current-user", userHandler.CurrentUser)
		auth.PUT("/update-password", userHandler.UpdatePassword)
		auth.PUT("/update-profile", userHandler.UpdateProfile)
	}

	return r
}

package routes

import (
	"github.com/gin-gonic/gin"

	"spinnerbot/internal/handlers"
	"spinnerbot/internal/middleware"
)

// SetupAuthRoutes sets up all routes related to registration and sessions
func SetupAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	auth.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
	}))
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/verify", middleware.AuthRequired(), handlers.VerifyToken)
		auth.GET("/profile", middleware.AuthRequired(), handlers.GetProfile)
		auth.PUT("/profile", middleware.AuthRequired(), handlers.UpdateProfile)
	}
}

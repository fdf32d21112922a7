package routes

import (
	"github.com/gin-gonic/gin"

	"spinnerbot/internal/handlers"
	"spinnerbot/internal/middleware"
)

// SetupTokenRoutes sets up all routes related to pump.fun token discovery
func SetupTokenRoutes(r *gin.Engine) {
	tokens := r.Group("/api/bot/tokens")
	tokens.Use(middleware.AuthRequired())
	{
		tokens.GET("/recommended", handlers.GetRecommendedTokens)
		tokens.GET("/new", handlers.GetNewTokens)
		tokens.GET("/hot", handlers.GetHotTokens)
		tokens.GET("/:mint", handlers.GetToken)
	}
}

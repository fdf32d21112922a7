package routes

import (
	"github.com/gin-gonic/gin"

	"spinnerbot/internal/handlers"
	"spinnerbot/internal/middleware"
)

// SetupBotRoutes sets up all routes related to the trading bot
func SetupBotRoutes(r *gin.Engine) {
	bot := r.Group("/api/bot")
	bot.Use(middleware.AuthRequired())
	{
		bot.GET("/config", handlers.GetBotConfig)
		bot.PUT("/config", handlers.UpdateBotConfig)
		bot.POST("/start", handlers.StartBot)
		bot.POST("/stop", handlers.StopBot)
		bot.POST("/reset", handlers.ResetBot)
		bot.GET("/stats", handlers.GetBotStats)
		bot.GET("/stream", handlers.StreamTrades)
	}
}

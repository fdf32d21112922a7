package routes

import (
	"github.com/gin-gonic/gin"

	"spinnerbot/internal/handlers"
	"spinnerbot/internal/middleware"
)

// SetupWalletRoutes sets up all routes related to wallet and ledger access
func SetupWalletRoutes(r *gin.Engine) {
	wallet := r.Group("/api/wallet")
	wallet.Use(middleware.AuthRequired())
	{
		wallet.GET("/balance", handlers.GetBalance)
		wallet.POST("/withdraw", handlers.Withdraw)
		wallet.GET("/deposit-address", handlers.GetDepositAddress)
		wallet.POST("/validate-address", handlers.ValidateAddress)
		wallet.GET("/transactions", handlers.ListTransactions)
		wallet.GET("/transactions/:signature", handlers.GetTransaction)
	}
}

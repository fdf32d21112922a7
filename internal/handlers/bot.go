package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spinnerbot/internal/bot"
	"spinnerbot/internal/middleware"
	"spinnerbot/internal/models"
	dbconfig "spinnerbot/pkg/config"
)

var engine *bot.Engine

// SetEngine injects the trading engine used by the bot handlers.
func SetEngine(e *bot.Engine) {
	engine = e
}

// UpdateBotConfigRequest carries the mutable bot settings. Pointers so a
// partial update leaves omitted fields unchanged.
type UpdateBotConfigRequest struct {
	TargetToken      *string  `json:"target_token"`
	InvestmentAmount *float64 `json:"investment_amount"`
	StopLoss         *float64 `json:"stop_loss"`
	TakeProfit       *float64 `json:"take_profit"`
	Slippage         *float64 `json:"slippage"`
	MaxTrades        *int     `json:"max_trades"`
	RiskLevel        *string  `json:"risk_level"`
	AutoReinvest     *bool    `json:"auto_reinvest"`
	MinLiquidity     *float64 `json:"min_liquidity"`
	MaxPositionSize  *float64 `json:"max_position_size"`
}

// getOrCreateBotConfig loads the user's bot config, creating the default
// one on first access.
func getOrCreateBotConfig(userID uint) (*models.BotConfig, error) {
	var cfg models.BotConfig
	err := dbconfig.DB.Where("user_id = ?", userID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := models.NewBotConfig(userID)
		if err := dbconfig.DB.Create(created).Error; err != nil {
			return nil, err
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetBotConfig returns the user's bot configuration.
func GetBotConfig(c *gin.Context) {
	userID := middleware.UserID(c)

	cfg, err := getOrCreateBotConfig(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// UpdateBotConfig applies a partial settings update after range validation.
func UpdateBotConfig(c *gin.Context) {
	userID := middleware.UserID(c)

	var request UpdateBotConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := getOrCreateBotConfig(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if request.InvestmentAmount != nil {
		if *request.InvestmentAmount <= 0 || *request.InvestmentAmount > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Investment amount must be between 0 and 100 SOL"})
			return
		}
		cfg.InvestmentAmount = *request.InvestmentAmount
	}
	if request.StopLoss != nil {
		if *request.StopLoss < 0 || *request.StopLoss > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stop loss must be between 0 and 100 percent"})
			return
		}
		cfg.StopLoss = *request.StopLoss
	}
	if request.TakeProfit != nil {
		if *request.TakeProfit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Take profit must be greater than zero"})
			return
		}
		cfg.TakeProfit = *request.TakeProfit
	}
	if request.Slippage != nil {
		if *request.Slippage < 0.1 || *request.Slippage > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slippage must be between 0.1 and 50 percent"})
			return
		}
		cfg.Slippage = *request.Slippage
	}
	if request.MaxTrades != nil {
		if *request.MaxTrades < 1 || *request.MaxTrades > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Max trades must be between 1 and 100"})
			return
		}
		cfg.MaxTrades = *request.MaxTrades
	}
	if request.RiskLevel != nil {
		switch *request.RiskLevel {
		case models.RiskLow, models.RiskMedium, models.RiskHigh:
			cfg.RiskLevel = *request.RiskLevel
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Risk level must be low, medium or high"})
			return
		}
	}
	if request.TargetToken != nil {
		cfg.TargetToken = *request.TargetToken
	}
	if request.AutoReinvest != nil {
		cfg.AutoReinvest = *request.AutoReinvest
	}
	if request.MinLiquidity != nil {
		if *request.MinLiquidity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Minimum liquidity cannot be negative"})
			return
		}
		cfg.MinLiquidity = *request.MinLiquidity
	}
	if request.MaxPositionSize != nil {
		if *request.MaxPositionSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Max position size must be greater than zero"})
			return
		}
		cfg.MaxPositionSize = *request.MaxPositionSize
	}

	if err := dbconfig.DB.Save(cfg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configuration updated",
		"config":  cfg,
	})
}

// StartBot activates the user's trading bot.
func StartBot(c *gin.Context) {
	userID := middleware.UserID(c)

	if _, err := getOrCreateBotConfig(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := engine.Start(userID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, bot.ErrBotNotFound) || errors.Is(err, bot.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Bot started",
		"is_active": true,
	})
}

// StopBot deactivates the user's trading bot.
func StopBot(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := engine.Stop(userID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, bot.ErrBotNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Bot stopped",
		"is_active": false,
	})
}

// ResetBot zeroes the bot's counters. Only allowed while stopped.
func ResetBot(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := engine.Reset(userID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, bot.ErrBotNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bot statistics reset"})
}

// GetBotStats returns the bot's aggregate performance numbers.
func GetBotStats(c *gin.Context) {
	userID := middleware.UserID(c)

	cfg, err := getOrCreateBotConfig(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var totalTrades int64
	dbconfig.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, models.TxTypeTrade).
		Count(&totalTrades)

	netProfit := cfg.TotalProfit - cfg.TotalLoss
	winRate := 0.0
	if cfg.TotalProfit+cfg.TotalLoss > 0 {
		winRate = cfg.TotalProfit / (cfg.TotalProfit + cfg.TotalLoss) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"is_active":      cfg.IsActive,
		"current_trades": cfg.CurrentTrades,
		"max_trades":     cfg.MaxTrades,
		"total_trades":   totalTrades,
		"total_profit":   cfg.TotalProfit,
		"total_loss":     cfg.TotalLoss,
		"net_profit":     netProfit,
		"win_rate":       winRate,
		"last_trade_at":  cfg.LastTradeAt,
	})
}

package models

import (
	"time"
)

// Risk levels accepted by BotConfig.RiskLevel.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Defaults applied when a bot config is created for a user.
const (
	DefaultInvestmentAmount = 0.1
	DefaultStopLoss         = 10.0
	DefaultTakeProfit       = 20.0
	DefaultSlippage         = 5.0
	DefaultMaxTrades        = 10
	DefaultMinLiquidity     = 1000.0
	DefaultMaxPositionSize  = 5.0
)

type BotConfig struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	UserID           uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	IsActive         bool       `gorm:"default:false" json:"is_active"`
	TargetToken      string     `gorm:"size:100;default:''" json:"target_token"`
	InvestmentAmount float64    `gorm:"not null" json:"investment_amount"`
	StopLoss         float64    `gorm:"not null" json:"stop_loss"`
	TakeProfit       float64    `gorm:"not null" json:"take_profit"`
	Slippage         float64    `gorm:"default:5" json:"slippage"`
	MaxTrades        int        `gorm:"default:10" json:"max_trades"`
	CurrentTrades    int        `gorm:"default:0" json:"current_trades"`
	TotalProfit      float64    `gorm:"default:0" json:"total_profit"`
	TotalLoss        float64    `gorm:"default:0" json:"total_loss"`
	LastTradeAt      *time.Time `json:"last_trade_at"`
	RiskLevel        string     `gorm:"size:10;default:'medium'" json:"risk_level"`
	AutoReinvest     bool       `gorm:"default:false" json:"auto_reinvest"`
	MinLiquidity     float64    `gorm:"default:1000" json:"min_liquidity"`
	MaxPositionSize  float64    `gorm:"default:5" json:"max_position_size"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (BotConfig) TableName() string {
	return "bot_config"
}

// NewBotConfig returns a config with the documented defaults for a user.
func NewBotConfig(userID uint) *BotConfig {
	return &BotConfig{
		UserID:           userID,
		InvestmentAmount: DefaultInvestmentAmount,
		StopLoss:         DefaultStopLoss,
		TakeProfit:       DefaultTakeProfit,
		Slippage:         DefaultSlippage,
		MaxTrades:        DefaultMaxTrades,
		RiskLevel:        RiskMedium,
		MinLiquidity:     DefaultMinLiquidity,
		MaxPositionSize:  DefaultMaxPositionSize,
	}
}

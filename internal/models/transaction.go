package models

import (
	"time"
)

// Transaction types.
const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeTrade      = "trade"
	TxTypeFee        = "fee"
)

// Transaction statuses.
const (
	TxStatusPending   = "pending"
	TxStatusConfirmed = "confirmed"
	TxStatusFailed    = "failed"
)

type Transaction struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Token       string    `gorm:"size:64;default:'SOL'" json:"token"`
	Signature   string    `gorm:"type:text;uniqueIndex;not null" json:"signature"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	FeeAmount   float64   `gorm:"default:0" json:"fee_amount"`
	FromAddress string    `gorm:"size:64;default:''" json:"from_address"`
	ToAddress   string    `gorm:"size:64;default:''" json:"to_address"`
	Metadata    JSONB     `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_transactions_created_at,sort:desc"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

package models

import (
	"time"
)

type User struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Email         string     `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Username      string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password      string     `gorm:"size:128;not null" json:"-"`
	WalletAddress string     `gorm:"size:64;uniqueIndex;not null" json:"wallet_address"`
	PrivateKey    string     `gorm:"type:text;not null" json:"-"` // AES-256-GCM encrypted
	SolBalance    float64    `gorm:"default:0" json:"sol_balance"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	LastLogin     *time.Time `json:"last_login"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Token struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Mint        string     `gorm:"size:100;uniqueIndex;not null" json:"mint"`
	Name        string     `gorm:"size:128;not null" json:"name"`
	Symbol      string     `gorm:"size:64;not null" json:"symbol"`
	Description string     `gorm:"size:512;default:''" json:"description"`
	Image       string     `gorm:"size:255;default:''" json:"image"`
	Website     string     `gorm:"size:255;default:''" json:"website"`
	Telegram    string     `gorm:"size:128;default:''" json:"telegram"`
	Twitter     string     `gorm:"size:128;default:''" json:"twitter"`
	MarketCap   float64    `gorm:"default:0;index:idx_tokens_market_cap,sort:desc" json:"market_cap"`
	Price       float64    `gorm:"default:0" json:"price"`
	Liquidity   float64    `gorm:"default:0" json:"liquidity"`
	Volume24h   float64    `gorm:"default:0" json:"volume_24h"`
	Holders     int        `gorm:"default:0" json:"holders"`
	IsLaunched  bool       `gorm:"default:false;index" json:"is_launched"`
	LaunchedAt  *time.Time `json:"launched_at"`
	Creator     string     `gorm:"size:128;default:''" json:"creator"`
	Metadata    JSONB      `gorm:"type:jsonb" json:"metadata"`
	LastUpdated time.Time  `json:"last_updated"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime;index:idx_tokens_created_at,sort:desc"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Token) TableName() string {
	return "tokens"
}

// JSONB is a custom type to handle JSONB data
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

package bot

import (
	"time"

	"spinnerbot/internal/models"
)

// Score rates a token for trading on a 0-100 scale. Pure function of the
// token fields and the supplied clock time.
func Score(token *models.Token, now time.Time) int {
	score := 0

	// Liquidity
	if token.Liquidity > 10000 {
		score += 30
	} else if token.Liquidity > 5000 {
		score += 20
	} else if token.Liquidity > 1000 {
		score += 10
	}

	// Market cap
	if token.MarketCap > 100000 {
		score += 25
	} else if token.MarketCap > 50000 {
		score += 15
	} else if token.MarketCap > 10000 {
		score += 5
	}

	// Completeness of the listing
	if len(token.Description) > 50 {
		score += 10
	}
	if token.Website != "" {
		score += 5
	}
	if token.Telegram != "" {
		score += 5
	}
	if token.Twitter != "" {
		score += 5
	}
	if token.Image != "" {
		score += 5
	}

	// Very new tokens are risky
	age := now.Sub(token.CreatedAt)
	if age > 24*time.Hour {
		score += 10
	} else if age > 12*time.Hour {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"spinnerbot/internal/bot"
	"spinnerbot/internal/models"
	"spinnerbot/pkg/pumpfun"
)

var tokenService *pumpfun.Service

// SetTokenService injects the pump.fun token service used by the token
// handlers.
func SetTokenService(s *pumpfun.Service) {
	tokenService = s
}

func tokenLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit < 1 || limit > 50 {
		return fallback
	}
	return limit
}

func withScores(tokens []models.Token) []gin.H {
	now := time.Now()
	out := make([]gin.H, 0, len(tokens))
	for i := range tokens {
		out = append(out, gin.H{
			"token": tokens[i],
			"score": bot.Score(&tokens[i], now),
		})
	}
	return out
}

// GetRecommendedTokens returns quality-filtered tokens ranked by score.
func GetRecommendedTokens(c *gin.Context) {
	limit := tokenLimit(c, 10)

	tokens, err := tokenService.Recommended(limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch recommended tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": withScores(tokens),
		"count":  len(tokens),
	})
}

// GetNewTokens returns the most recently created pump.fun tokens.
func GetNewTokens(c *gin.Context) {
	limit := tokenLimit(c, 20)

	tokens, err := tokenService.NewTokens(limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch new tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": withScores(tokens),
		"count":  len(tokens),
	})
}

// GetHotTokens returns tokens ranked by market cap.
func GetHotTokens(c *gin.Context) {
	limit := tokenLimit(c, 20)

	tokens, err := tokenService.HotTokens(limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch hot tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": withScores(tokens),
		"count":  len(tokens),
	})
}

// GetToken returns a single token by mint, refreshing it from pump.fun.
func GetToken(c *gin.Context) {
	mint := c.Param("mint")

	token, err := tokenService.TokenInfo(mint)
	if err != nil || token == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"score": bot.Score(token, time.Now()),
	})
}

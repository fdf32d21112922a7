package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinnerbot/internal/models"
)

// scoredToken builds a token whose score lands in a known tier: liquidity
// and market cap maxed gives 55, plus listing fields as needed.
func scoredToken(now time.Time) models.Token {
	return models.Token{
		Mint:        "So11111111111111111111111111111111111111112",
		Name:        "Example",
		Symbol:      "EXM",
		Liquidity:   20000,
		MarketCap:   200000,
		Description: "A token with a description long enough to count toward the score",
		Website:     "https://example.com",
		Telegram:    "https://t.me/example",
		Twitter:     "https://x.com/example",
		Image:       "https://example.com/logo.png",
		CreatedAt:   now.Add(-48 * time.Hour),
	}
}

func TestGenerateSignal(t *testing.T) {
	now := time.Now()
	cfg := models.NewBotConfig(1)

	t.Run("High Score Yields Buy Signal", func(t *testing.T) {
		token := scoredToken(now)
		require.GreaterOrEqual(t, Score(&token, now), 80)

		signal := GenerateSignal(&token, cfg, now)
		require.NotNil(t, signal)
		assert.Equal(t, ActionBuy, signal.Action)
		assert.Equal(t, 90, signal.Confidence)
		assert.Equal(t, "Token com score muito alto", signal.Reason)
		assert.Equal(t, cfg.InvestmentAmount, signal.Amount)
	})

	t.Run("Low Score Yields No Signal", func(t *testing.T) {
		token := models.Token{CreatedAt: now}
		assert.Nil(t, GenerateSignal(&token, cfg, now))
	})

	t.Run("High Risk Boost Clamps At 100", func(t *testing.T) {
		highRisk := models.NewBotConfig(1)
		highRisk.RiskLevel = models.RiskHigh

		token := scoredToken(now)
		signal := GenerateSignal(&token, highRisk, now)
		require.NotNil(t, signal)
		assert.Equal(t, 100, signal.Confidence)
	})

	t.Run("Low Risk Lowers Confidence", func(t *testing.T) {
		lowRisk := models.NewBotConfig(1)
		lowRisk.RiskLevel = models.RiskLow

		token := scoredToken(now)
		signal := GenerateSignal(&token, lowRisk, now)
		require.NotNil(t, signal)
		assert.Equal(t, 70, signal.Confidence)
	})

	t.Run("Low Liquidity Penalty And Reason Suffix", func(t *testing.T) {
		token := scoredToken(now)
		token.Liquidity = 500
		// Score drops by 30 but stays in the 60+ tier.
		require.GreaterOrEqual(t, Score(&token, now), 60)

		signal := GenerateSignal(&token, cfg, now)
		require.NotNil(t, signal)
		assert.Equal(t, 40, signal.Confidence)
		assert.Contains(t, signal.Reason, "(liquidez baixa)")
	})

	t.Run("Very New Token Penalized", func(t *testing.T) {
		token := scoredToken(now)
		token.CreatedAt = now.Add(-30 * time.Minute)

		signal := GenerateSignal(&token, cfg, now)
		require.NotNil(t, signal)
		assert.Equal(t, 50, signal.Confidence)
		assert.Contains(t, signal.Reason, "(token muito novo)")
	})

	t.Run("Very New Low Tier Token Rejected", func(t *testing.T) {
		token := scoredToken(now)
		token.CreatedAt = now.Add(-30 * time.Minute)
		token.MarketCap = 0
		token.Liquidity = 6000

		// 50 score tier gives 50 confidence, -40 age penalty lands below 30.
		assert.Nil(t, GenerateSignal(&token, cfg, now))
	})

	t.Run("Confidence Floor Rejects Below 30", func(t *testing.T) {
		lowRisk := models.NewBotConfig(1)
		lowRisk.RiskLevel = models.RiskLow

		token := scoredToken(now)
		token.Liquidity = 500

		// 70 base tier, -20 risk, -30 liquidity = 20, below the floor.
		assert.Nil(t, GenerateSignal(&token, lowRisk, now))
	})
}

func TestAnalyzeSignals(t *testing.T) {
	now := time.Now()
	cfg := models.NewBotConfig(1)

	strong := scoredToken(now)
	weak := scoredToken(now)
	weak.Mint = "weak"
	weak.MarketCap = 0
	weak.Liquidity = 6000

	signals := AnalyzeSignals([]models.Token{weak, strong}, cfg, now)
	require.Len(t, signals, 2)
	assert.Equal(t, strong.Mint, signals[0].Token.Mint)
	assert.GreaterOrEqual(t, signals[0].Confidence, signals[1].Confidence)
}

func TestMinConfidenceForRisk(t *testing.T) {
	assert.Equal(t, 80, MinConfidenceForRisk(models.RiskLow))
	assert.Equal(t, 60, MinConfidenceForRisk(models.RiskMedium))
	assert.Equal(t, 40, MinConfidenceForRisk(models.RiskHigh))
	assert.Equal(t, 60, MinConfidenceForRisk("unknown"))
}

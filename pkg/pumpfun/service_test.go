package pumpfun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinnerbot/internal/models"
)

func TestNormalizeCoin(t *testing.T) {
	t.Run("Maps Core Fields", func(t *testing.T) {
		coin := CoinData{
			Mint:               "mint-1",
			Name:               "Example",
			Symbol:             "EXM",
			Description:        "desc",
			MarketCap:          42000,
			Price:              0.002,
			VirtualSolReserves: 8000,
			Creator:            "creator",
			CreatedTimestamp:   1700000000000,
		}

		token := NormalizeCoin(&coin)
		assert.Equal(t, "mint-1", token.Mint)
		assert.Equal(t, "EXM", token.Symbol)
		assert.Equal(t, float64(8000), token.Liquidity)
		assert.Equal(t, time.UnixMilli(1700000000000), token.CreatedAt)
		assert.False(t, token.IsLaunched)
		assert.Nil(t, token.LaunchedAt)
		assert.Equal(t, float64(8000), token.Metadata["virtual_sol_reserves"])
	})

	t.Run("Derives Price From Curve Reserves", func(t *testing.T) {
		coin := CoinData{
			Mint:                 "mint-3",
			VirtualSolReserves:   30,
			VirtualTokenReserves: 1_000_000,
		}

		token := NormalizeCoin(&coin)
		assert.InDelta(t, 0.00003, token.Price, 1e-12)
	})

	t.Run("Raydium Pool Marks Launched", func(t *testing.T) {
		coin := CoinData{
			Mint:                   "mint-2",
			RaydiumPool:            "pool-address",
			KingOfTheHillTimestamp: 1700000000,
		}

		token := NormalizeCoin(&coin)
		assert.True(t, token.IsLaunched)
		require.NotNil(t, token.LaunchedAt)
		assert.Equal(t, time.Unix(1700000000, 0), *token.LaunchedAt)
	})
}

func TestFilterQualityTokens(t *testing.T) {
	now := time.Now()

	good := models.Token{
		Mint:        "good",
		Name:        "Good",
		Symbol:      "GOOD",
		Description: "desc",
		Liquidity:   2000,
		LastUpdated: now,
	}

	t.Run("Keeps Complete Liquid Tokens", func(t *testing.T) {
		quality := filterQualityTokens([]models.Token{good}, now)
		require.Len(t, quality, 1)
		assert.Equal(t, "good", quality[0].Mint)
	})

	t.Run("Drops Missing Basic Info", func(t *testing.T) {
		anonymous := good
		anonymous.Description = ""
		assert.Empty(t, filterQualityTokens([]models.Token{anonymous}, now))
	})

	t.Run("Drops Thin Liquidity", func(t *testing.T) {
		thin := good
		thin.Liquidity = 500
		assert.Empty(t, filterQualityTokens([]models.Token{thin}, now))
	})

	t.Run("Drops Stale Tokens", func(t *testing.T) {
		stale := good
		stale.LastUpdated = now.Add(-25 * time.Hour)
		assert.Empty(t, filterQualityTokens([]models.Token{stale}, now))
	})
}

package pumpfun

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spinnerbot/internal/bot"
	"spinnerbot/internal/models"
)

// Service is the token feed adapter: it pulls listings from the pump.fun
// API, normalizes them and upserts them into the shared token catalog.
// Feed failures degrade to empty results and are never surfaced to callers.
type Service struct {
	db     *gorm.DB
	client *Client
}

func NewService(db *gorm.DB, client *Client) *Service {
	return &Service{db: db, client: client}
}

// NewTokens fetches and persists the most recently created tokens.
func (s *Service) NewTokens(limit int) ([]models.Token, error) {
	coins, err := s.client.GetNewCoins(limit)
	if err != nil {
		log.Errorf("Failed to fetch new tokens: %v", err)
		return nil, nil
	}
	return s.upsertCoins(coins), nil
}

// HotTokens fetches and persists tokens ranked by 24h volume.
func (s *Service) HotTokens(limit int) ([]models.Token, error) {
	coins, err := s.client.GetHotCoins(limit)
	if err != nil {
		log.Errorf("Failed to fetch hot tokens: %v", err)
		return nil, nil
	}
	return s.upsertCoins(coins), nil
}

// TokenInfo fetches and persists a single token by mint.
func (s *Service) TokenInfo(mint string) (*models.Token, error) {
	coin, err := s.client.GetCoin(mint)
	if err != nil {
		log.Errorf("Failed to fetch token %s: %v", mint, err)
		return nil, nil
	}
	tokens := s.upsertCoins([]CoinData{*coin})
	if len(tokens) == 0 {
		return nil, nil
	}
	return &tokens[0], nil
}

// Recommended fetches new and hot tokens, dedupes by mint, applies the
// quality filter and returns the top-scored candidates.
func (s *Service) Recommended(limit int) ([]models.Token, error) {
	newTokens, _ := s.NewTokens(50)
	hotTokens, _ := s.HotTokens(50)

	seen := make(map[string]bool, len(newTokens)+len(hotTokens))
	var unique []models.Token
	for _, token := range append(newTokens, hotTokens...) {
		if !seen[token.Mint] {
			seen[token.Mint] = true
			unique = append(unique, token)
		}
	}

	now := time.Now()
	quality := filterQualityTokens(unique, now)

	sort.SliceStable(quality, func(i, j int) bool {
		return bot.Score(&quality[i], now) > bot.Score(&quality[j], now)
	})

	if len(quality) > limit {
		quality = quality[:limit]
	}
	return quality, nil
}

// TokenByMint reads a token back from the catalog.
func (s *Service) TokenByMint(mint string) (*models.Token, error) {
	var token models.Token
	if err := s.db.Where("mint = ?", mint).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *Service) upsertCoins(coins []CoinData) []models.Token {
	tokens := make([]models.Token, 0, len(coins))
	for i := range coins {
		token := NormalizeCoin(&coins[i])

		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "mint"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "symbol", "description", "image", "website",
				"telegram", "twitter", "market_cap", "price", "liquidity",
				"is_launched", "launched_at", "creator", "metadata",
				"last_updated", "updated_at",
			}),
		}).Create(&token).Error
		if err != nil {
			log.Errorf("Failed to upsert token %s: %v", token.Mint, err)
			continue
		}

		tokens = append(tokens, token)
	}
	return tokens
}

// NormalizeCoin maps a raw API coin onto the catalog model. Liquidity is
// taken from the virtual SOL reserves; the launch flag is derived from the
// presence of a Raydium pool.
func NormalizeCoin(coin *CoinData) models.Token {
	token := models.Token{
		Mint:        coin.Mint,
		Name:        coin.Name,
		Symbol:      coin.Symbol,
		Description: coin.Description,
		Image:       coin.Image,
		Website:     coin.Website,
		Telegram:    coin.Telegram,
		Twitter:     coin.Twitter,
		MarketCap:   coin.MarketCap,
		Price:       coin.Price,
		Liquidity:   coin.VirtualSolReserves,
		Creator:     coin.Creator,
		IsLaunched:  coin.RaydiumPool != "",
		Metadata: models.JSONB{
			"total_supply":           coin.TotalSupply,
			"virtual_sol_reserves":   coin.VirtualSolReserves,
			"virtual_token_reserves": coin.VirtualTokenReserves,
			"raydium_pool":           coin.RaydiumPool,
			"last_trade_timestamp":   coin.LastTradeTimestamp,
		},
		LastUpdated: time.Now(),
	}

	// List endpoints omit the price; derive it from the curve reserves.
	if token.Price == 0 {
		token.Price = SpotPrice(coin.VirtualSolReserves, coin.VirtualTokenReserves)
	}

	if coin.KingOfTheHillTimestamp > 0 {
		launched := time.Unix(coin.KingOfTheHillTimestamp, 0)
		token.LaunchedAt = &launched
	}
	if coin.CreatedTimestamp > 0 {
		token.CreatedAt = time.UnixMilli(coin.CreatedTimestamp)
	}

	return token
}

func filterQualityTokens(tokens []models.Token, now time.Time) []models.Token {
	var quality []models.Token
	for _, token := range tokens {
		hasBasicInfo := token.Name != "" && token.Symbol != "" && token.Description != ""
		hasMinimumLiquidity := token.Liquidity >= 1000
		hasRecentActivity := now.Sub(token.LastUpdated) < 24*time.Hour

		if hasBasicInfo && hasMinimumLiquidity && hasRecentActivity {
			quality = append(quality, token)
		}
	}
	return quality
}

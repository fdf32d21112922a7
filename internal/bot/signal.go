package bot

import (
	"sort"
	"time"

	"spinnerbot/internal/models"
)

// Trade actions. The generator only ever emits buy signals; the sell path
// exists downstream for completeness but is not reachable from here.
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// TradeSignal is a candidate trade decision for one cycle. Not persisted.
type TradeSignal struct {
	Action     string
	Token      models.Token
	Amount     float64
	Reason     string
	Confidence int
}

// GenerateSignal evaluates one token against the bot configuration and
// returns a signal, or nil when the token does not qualify.
func GenerateSignal(token *models.Token, cfg *models.BotConfig, now time.Time) *TradeSignal {
	score := Score(token, now)

	var confidence int
	var reason string

	switch {
	case score >= 80:
		confidence = 90
		reason = "Token com score muito alto"
	case score >= 60:
		confidence = 70
		reason = "Token com score alto"
	case score >= 40:
		confidence = 50
		reason = "Token com score médio"
	default:
		return nil
	}

	switch cfg.RiskLevel {
	case models.RiskLow:
		confidence -= 20
	case models.RiskHigh:
		confidence += 10
	}

	if token.Liquidity < cfg.MinLiquidity {
		confidence -= 30
		reason += " (liquidez baixa)"
	}

	if now.Sub(token.CreatedAt) < time.Hour {
		confidence -= 40
		reason += " (token muito novo)"
	}

	if confidence < 30 {
		return nil
	}
	if confidence > 100 {
		confidence = 100
	}

	return &TradeSignal{
		Action:     ActionBuy,
		Token:      *token,
		Amount:     cfg.InvestmentAmount,
		Reason:     reason,
		Confidence: confidence,
	}
}

// AnalyzeSignals generates signals for a batch of candidate tokens and
// returns them sorted by descending confidence.
func AnalyzeSignals(tokens []models.Token, cfg *models.BotConfig, now time.Time) []TradeSignal {
	signals := make([]TradeSignal, 0, len(tokens))
	for i := range tokens {
		if signal := GenerateSignal(&tokens[i], cfg, now); signal != nil {
			signals = append(signals, *signal)
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Confidence > signals[j].Confidence
	})

	return signals
}

// MinConfidenceForRisk returns the confidence floor a signal must meet
// before the bot acts on it.
func MinConfidenceForRisk(riskLevel string) int {
	switch riskLevel {
	case models.RiskLow:
		return 80
	case models.RiskHigh:
		return 40
	default:
		return 60
	}
}

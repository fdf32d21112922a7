package bot

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// TradeResult is the fabricated outcome of a simulated order.
type TradeResult struct {
	Success   bool
	Signature string
	Amount    float64
	Price     float64
}

// Simulator fabricates trade executions without touching any exchange.
// The random source is injected so tests can pin exact outcomes.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a simulator around the given random source.
func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Simulate fabricates an execution for the signal. Price moves by a uniform
// variation in [-5%,+5%]; slippage is 1% above 5000 liquidity, 5% below,
// added for buys and subtracted for sells. Sell proceeds scale with the
// price variation. Always succeeds.
func (s *Simulator) Simulate(action string, signal *TradeSignal) TradeResult {
	variation := (s.rng.Float64() - 0.5) * 0.1
	price := signal.Token.Price * (1 + variation)

	slippage := 0.05
	if signal.Token.Liquidity > 5000 {
		slippage = 0.01
	}

	finalPrice := price * (1 + slippage)
	finalAmount := signal.Amount
	if action == ActionSell {
		finalPrice = price * (1 - slippage)
		finalAmount = signal.Amount * (1 + variation)
	}

	return TradeResult{
		Success:   true,
		Signature: fmt.Sprintf("simulated_%s_%s", action, uuid.NewString()),
		Amount:    finalAmount,
		Price:     finalPrice,
	}
}

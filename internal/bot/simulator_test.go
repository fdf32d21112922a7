package bot

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"spinnerbot/internal/models"
)

func TestSimulator(t *testing.T) {
	signal := &TradeSignal{
		Action: ActionBuy,
		Token: models.Token{
			Mint:      "mint",
			Symbol:    "EXM",
			Price:     2.0,
			Liquidity: 10000,
		},
		Amount: 0.5,
	}

	t.Run("Always Succeeds With Tagged Signature", func(t *testing.T) {
		sim := NewSimulator(rand.New(rand.NewSource(1)))
		result := sim.Simulate(ActionBuy, signal)
		assert.True(t, result.Success)
		assert.True(t, strings.HasPrefix(result.Signature, "simulated_buy_"))
	})

	t.Run("Buy Keeps Amount And Pays Slippage", func(t *testing.T) {
		sim := NewSimulator(rand.New(rand.NewSource(2)))
		for i := 0; i < 100; i++ {
			result := sim.Simulate(ActionBuy, signal)
			assert.Equal(t, signal.Amount, result.Amount)

			// Price varies at most 5% then gains 1% slippage at deep liquidity.
			assert.GreaterOrEqual(t, result.Price, signal.Token.Price*0.95*1.01)
			assert.LessOrEqual(t, result.Price, signal.Token.Price*1.05*1.01)
		}
	})

	t.Run("Thin Liquidity Pays Higher Slippage", func(t *testing.T) {
		thin := *signal
		thin.Token.Liquidity = 1000

		sim := NewSimulator(rand.New(rand.NewSource(3)))
		for i := 0; i < 100; i++ {
			result := sim.Simulate(ActionBuy, &thin)
			assert.GreaterOrEqual(t, result.Price, thin.Token.Price*0.95*1.05)
			assert.LessOrEqual(t, result.Price, thin.Token.Price*1.05*1.05)
		}
	})

	t.Run("Sell Scales Proceeds With Variation", func(t *testing.T) {
		sim := NewSimulator(rand.New(rand.NewSource(4)))
		for i := 0; i < 100; i++ {
			result := sim.Simulate(ActionSell, signal)
			assert.GreaterOrEqual(t, result.Amount, signal.Amount*0.95)
			assert.LessOrEqual(t, result.Amount, signal.Amount*1.05)
			assert.LessOrEqual(t, result.Price, signal.Token.Price*1.05*0.99)
		}
	})

	t.Run("Same Seed Reproduces Prices", func(t *testing.T) {
		a := NewSimulator(rand.New(rand.NewSource(7)))
		b := NewSimulator(rand.New(rand.NewSource(7)))

		for i := 0; i < 10; i++ {
			ra := a.Simulate(ActionBuy, signal)
			rb := b.Simulate(ActionBuy, signal)
			assert.Equal(t, ra.Price, rb.Price)
			assert.Equal(t, ra.Amount, rb.Amount)
		}
	})
}

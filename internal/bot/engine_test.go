package bot

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spinnerbot/internal/models"
)

type fakeStore struct {
	mu    sync.Mutex
	bots  map[uint]*models.BotConfig
	users map[uint]*models.User
	txs   []*models.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bots:  make(map[uint]*models.BotConfig),
		users: make(map[uint]*models.User),
	}
}

func (f *fakeStore) BotByUserID(userID uint) (*models.BotConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.bots[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *cfg
	return &clone, nil
}

func (f *fakeStore) SaveBot(cfg *models.BotConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *cfg
	f.bots[cfg.UserID] = &clone
	return nil
}

func (f *fakeStore) UserByID(userID uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func (f *fakeStore) CreateTransaction(tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs = append(f.txs, tx)
	return nil
}

func (f *fakeStore) ActiveBotUserIDs() ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uint
	for id, cfg := range f.bots {
		if cfg.IsActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeStore) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.txs)
}

type fakeTokenSource struct {
	tokens []models.Token
	err    error
}

func (f *fakeTokenSource) Recommended(limit int) ([]models.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.tokens) > limit {
		return f.tokens[:limit], nil
	}
	return f.tokens, nil
}

func strongToken(mint string) models.Token {
	return models.Token{
		Mint:        mint,
		Name:        "Example",
		Symbol:      "EXM",
		Price:       1.5,
		Liquidity:   20000,
		MarketCap:   200000,
		Description: "A token with a description long enough to count toward the score",
		Website:     "https://example.com",
		Telegram:    "https://t.me/example",
		Twitter:     "https://x.com/example",
		Image:       "https://example.com/logo.png",
		CreatedAt:   time.Now().Add(-48 * time.Hour),
	}
}

func newTestEngine(store *fakeStore, source TokenSource, balance float64) *Engine {
	e := NewEngine(store, source, func(string) (float64, error) {
		return balance, nil
	}, NewSimulator(rand.New(rand.NewSource(42))))
	e.Interval = time.Hour
	return e
}

func seedUser(store *fakeStore, userID uint) {
	store.users[userID] = &models.User{Username: "alice", WalletAddress: "addr"}
	store.users[userID].ID = userID
	store.bots[userID] = models.NewBotConfig(userID)
}

func TestEngineStartStop(t *testing.T) {
	t.Run("Start Unknown User", func(t *testing.T) {
		engine := newTestEngine(newFakeStore(), &fakeTokenSource{}, 10)
		assert.ErrorIs(t, engine.Start(1), ErrBotNotFound)
	})

	t.Run("Start Insufficient Balance", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		engine := newTestEngine(store, &fakeTokenSource{}, 0.05)

		assert.ErrorIs(t, engine.Start(1), ErrInsufficientBalance)
		assert.False(t, engine.Running(1))
	})

	t.Run("Start Activates And Registers Runner", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		engine := newTestEngine(store, &fakeTokenSource{}, 10)
		defer engine.Shutdown()

		require.NoError(t, engine.Start(1))
		assert.True(t, engine.Running(1))

		cfg, err := store.BotByUserID(1)
		require.NoError(t, err)
		assert.True(t, cfg.IsActive)
	})

	t.Run("Double Start Is Safe", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		engine := newTestEngine(store, &fakeTokenSource{}, 10)
		defer engine.Shutdown()

		require.NoError(t, engine.Start(1))
		require.NoError(t, engine.Start(1))
		assert.True(t, engine.Running(1))
	})

	t.Run("Stop Deactivates And Stops Runner", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		engine := newTestEngine(store, &fakeTokenSource{}, 10)
		defer engine.Shutdown()

		require.NoError(t, engine.Start(1))
		require.NoError(t, engine.Stop(1))
		assert.False(t, engine.Running(1))

		cfg, err := store.BotByUserID(1)
		require.NoError(t, err)
		assert.False(t, cfg.IsActive)
	})

	t.Run("Stop Without Runner Is NoOp", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		engine := newTestEngine(store, &fakeTokenSource{}, 10)

		assert.NoError(t, engine.Stop(1))
	})
}

func TestEngineReset(t *testing.T) {
	store := newFakeStore()
	seedUser(store, 1)
	engine := newTestEngine(store, &fakeTokenSource{}, 10)
	defer engine.Shutdown()

	t.Run("Rejected While Active", func(t *testing.T) {
		require.NoError(t, engine.Start(1))
		assert.ErrorIs(t, engine.Reset(1), ErrBotActive)
	})

	t.Run("Zeroes Counters When Stopped", func(t *testing.T) {
		require.NoError(t, engine.Stop(1))

		cfg, _ := store.BotByUserID(1)
		now := time.Now()
		cfg.CurrentTrades = 4
		cfg.TotalProfit = 1.2
		cfg.TotalLoss = 0.3
		cfg.LastTradeAt = &now
		require.NoError(t, store.SaveBot(cfg))

		require.NoError(t, engine.Reset(1))

		cfg, _ = store.BotByUserID(1)
		assert.Equal(t, 0, cfg.CurrentTrades)
		assert.Zero(t, cfg.TotalProfit)
		assert.Zero(t, cfg.TotalLoss)
		assert.Nil(t, cfg.LastTradeAt)
	})
}

func TestEngineRunCycle(t *testing.T) {
	t.Run("Executes One Trade Per Cycle", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		source := &fakeTokenSource{tokens: []models.Token{
			strongToken("mint-a"),
			strongToken("mint-b"),
		}}
		engine := newTestEngine(store, source, 10)

		var events []TradeEvent
		engine.OnTrade = func(event TradeEvent) {
			events = append(events, event)
		}

		cfg, _ := store.BotByUserID(1)
		cfg.IsActive = true
		require.NoError(t, store.SaveBot(cfg))

		engine.RunCycle(1)

		require.Equal(t, 1, store.transactionCount())
		tx := store.txs[0]
		assert.Equal(t, models.TxTypeTrade, tx.Type)
		assert.Equal(t, models.TxStatusConfirmed, tx.Status)
		assert.Equal(t, "buy", tx.Metadata["action"])

		cfg, _ = store.BotByUserID(1)
		assert.Equal(t, 1, cfg.CurrentTrades)
		assert.NotNil(t, cfg.LastTradeAt)

		require.Len(t, events, 1)
		assert.Equal(t, uint(1), events[0].UserID)
		assert.Equal(t, "buy", events[0].Action)
	})

	t.Run("Max Trades Reached Is NoOp", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		source := &fakeTokenSource{tokens: []models.Token{strongToken("mint-a")}}
		engine := newTestEngine(store, source, 10)

		cfg, _ := store.BotByUserID(1)
		cfg.IsActive = true
		cfg.CurrentTrades = cfg.MaxTrades
		require.NoError(t, store.SaveBot(cfg))

		engine.RunCycle(1)
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("Low Confidence Candidates Skipped", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)

		weak := strongToken("mint-weak")
		weak.MarketCap = 0
		weak.Liquidity = 6000

		source := &fakeTokenSource{tokens: []models.Token{weak}}
		engine := newTestEngine(store, source, 10)

		cfg, _ := store.BotByUserID(1)
		cfg.IsActive = true
		cfg.RiskLevel = models.RiskLow
		require.NoError(t, store.SaveBot(cfg))

		engine.RunCycle(1)
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("Inactive Config Stops Runner", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		engine := newTestEngine(store, &fakeTokenSource{}, 10)
		defer engine.Shutdown()

		require.NoError(t, engine.Start(1))

		cfg, _ := store.BotByUserID(1)
		cfg.IsActive = false
		require.NoError(t, store.SaveBot(cfg))

		engine.RunCycle(1)
		assert.False(t, engine.Running(1))
	})

	t.Run("Token Fetch Failure Is Swallowed", func(t *testing.T) {
		store := newFakeStore()
		seedUser(store, 1)
		source := &fakeTokenSource{err: errors.New("api down")}
		engine := newTestEngine(store, source, 10)

		cfg, _ := store.BotByUserID(1)
		cfg.IsActive = true
		require.NoError(t, store.SaveBot(cfg))

		engine.RunCycle(1)
		assert.Equal(t, 0, store.transactionCount())
	})
}

func TestEngineReconcile(t *testing.T) {
	store := newFakeStore()
	seedUser(store, 1)
	seedUser(store, 2)

	cfg, _ := store.BotByUserID(1)
	cfg.IsActive = true
	require.NoError(t, store.SaveBot(cfg))

	engine := newTestEngine(store, &fakeTokenSource{}, 10)
	defer engine.Shutdown()

	t.Run("Resumes Persisted Active Bots", func(t *testing.T) {
		engine.Reconcile()
		assert.True(t, engine.Running(1))
		assert.False(t, engine.Running(2))
	})

	t.Run("Halts Runners Flagged Inactive", func(t *testing.T) {
		cfg, _ := store.BotByUserID(1)
		cfg.IsActive = false
		require.NoError(t, store.SaveBot(cfg))

		engine.Reconcile()
		assert.False(t, engine.Running(1))
	})
}

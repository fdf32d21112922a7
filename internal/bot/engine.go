package bot

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"spinnerbot/internal/models"
)

var (
	ErrBotNotFound         = errors.New("bot configuration not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBotActive           = errors.New("bot is active")
)

const (
	defaultCycleInterval = 60 * time.Second
	candidateTokenCount  = 5
)

// Store abstracts the persistence the engine needs, so cycles can be
// exercised in tests without a database.
type Store interface {
	BotByUserID(userID uint) (*models.BotConfig, error)
	SaveBot(cfg *models.BotConfig) error
	UserByID(userID uint) (*models.User, error)
	CreateTransaction(tx *models.Transaction) error
	ActiveBotUserIDs() ([]uint, error)
}

// TokenSource supplies ranked candidate tokens for a cycle.
type TokenSource interface {
	Recommended(limit int) ([]models.Token, error)
}

// BalanceFunc reports the spendable SOL balance of a wallet address.
type BalanceFunc func(address string) (float64, error)

// TradeEvent describes an executed simulated trade. Delivered to OnTrade
// subscribers (websocket hub, AMQP publisher).
type TradeEvent struct {
	UserID     uint      `json:"user_id"`
	Action     string    `json:"action"`
	TokenMint  string    `json:"token_mint"`
	Symbol     string    `json:"symbol"`
	Amount     float64   `json:"amount"`
	Price      float64   `json:"price"`
	Confidence int       `json:"confidence"`
	Reason     string    `json:"reason"`
	Signature  string    `json:"signature"`
	ExecutedAt time.Time `json:"executed_at"`
}

// Engine runs one trading cycle loop per active user. The persisted
// is_active flag is the source of truth; Reconcile converges the in-process
// runner map toward it, so restarts resume bots instead of stranding them.
type Engine struct {
	store   Store
	tokens  TokenSource
	balance BalanceFunc
	sim     *Simulator

	// Interval between cycles. Only mutate before the first Start.
	Interval time.Duration

	// OnTrade, when set, is invoked after every executed trade.
	OnTrade func(TradeEvent)

	mu      sync.Mutex
	runners map[uint]chan struct{}
}

func NewEngine(store Store, tokens TokenSource, balance BalanceFunc, sim *Simulator) *Engine {
	return &Engine{
		store:    store,
		tokens:   tokens,
		balance:  balance,
		sim:      sim,
		Interval: defaultCycleInterval,
		runners:  make(map[uint]chan struct{}),
	}
}

// Start validates preconditions, flips the persisted active flag and
// registers the cycle runner for the user.
func (e *Engine) Start(userID uint) error {
	cfg, err := e.store.BotByUserID(userID)
	if err != nil {
		return ErrBotNotFound
	}

	user, err := e.store.UserByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	balance, err := e.balance(user.WalletAddress)
	if err != nil {
		log.Warnf("Balance lookup failed for user %d: %v", userID, err)
		balance = 0
	}
	if balance < cfg.InvestmentAmount {
		return ErrInsufficientBalance
	}

	cfg.IsActive = true
	if err := e.store.SaveBot(cfg); err != nil {
		return err
	}

	e.startRunner(userID)
	log.Infof("Bot started for user %d", userID)
	return nil
}

// Stop flips the persisted flag and removes the runner. Stopping a user
// with no registered runner is a no-op.
func (e *Engine) Stop(userID uint) error {
	cfg, err := e.store.BotByUserID(userID)
	if err != nil {
		return ErrBotNotFound
	}

	cfg.IsActive = false
	if err := e.store.SaveBot(cfg); err != nil {
		return err
	}

	e.stopRunner(userID)
	log.Infof("Bot stopped for user %d", userID)
	return nil
}

// Reset zeroes the trade counters. Rejected while the bot is active.
func (e *Engine) Reset(userID uint) error {
	cfg, err := e.store.BotByUserID(userID)
	if err != nil {
		return ErrBotNotFound
	}

	if cfg.IsActive {
		return ErrBotActive
	}

	cfg.CurrentTrades = 0
	cfg.TotalProfit = 0
	cfg.TotalLoss = 0
	cfg.LastTradeAt = nil
	return e.store.SaveBot(cfg)
}

// Reconcile converges the runner map toward the persisted active flags.
// Called at startup and on a periodic schedule.
func (e *Engine) Reconcile() {
	active, err := e.store.ActiveBotUserIDs()
	if err != nil {
		log.Errorf("Reconcile: failed to list active bots: %v", err)
		return
	}

	shouldRun := make(map[uint]bool, len(active))
	for _, id := range active {
		shouldRun[id] = true
	}

	e.mu.Lock()
	var toStart, toStop []uint
	for id := range shouldRun {
		if _, ok := e.runners[id]; !ok {
			toStart = append(toStart, id)
		}
	}
	for id := range e.runners {
		if !shouldRun[id] {
			toStop = append(toStop, id)
		}
	}
	e.mu.Unlock()

	for _, id := range toStart {
		log.Infof("Reconcile: resuming bot for user %d", id)
		e.startRunner(id)
	}
	for _, id := range toStop {
		log.Infof("Reconcile: halting orphaned runner for user %d", id)
		e.stopRunner(id)
	}
}

// Shutdown stops every runner without touching the persisted flags.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	for id, stop := range e.runners {
		close(stop)
		delete(e.runners, id)
	}
	e.mu.Unlock()
	log.Info("All bot runners stopped")
}

// Running reports whether a runner is registered for the user.
func (e *Engine) Running(userID uint) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.runners[userID]
	return ok
}

func (e *Engine) startRunner(userID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// At most one runner per user.
	if _, ok := e.runners[userID]; ok {
		return
	}

	stop := make(chan struct{})
	e.runners[userID] = stop

	go func() {
		ticker := time.NewTicker(e.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.RunCycle(userID)
			}
		}
	}()
}

func (e *Engine) stopRunner(userID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if stop, ok := e.runners[userID]; ok {
		close(stop)
		delete(e.runners, userID)
	}
}

// RunCycle executes one evaluation-and-possibly-trade iteration for the
// user. Errors are logged and swallowed; the next tick proceeds regardless.
func (e *Engine) RunCycle(userID uint) {
	cfg, err := e.store.BotByUserID(userID)
	if err != nil {
		log.Errorf("Bot cycle for user %d: config lookup failed: %v", userID, err)
		return
	}

	// Stopped externally; drop the runner.
	if !cfg.IsActive {
		e.stopRunner(userID)
		return
	}

	if cfg.CurrentTrades >= cfg.MaxTrades {
		log.Debugf("Bot for user %d reached max trades (%d)", userID, cfg.MaxTrades)
		return
	}

	tokens, err := e.tokens.Recommended(candidateTokenCount)
	if err != nil {
		log.Errorf("Bot cycle for user %d: token fetch failed: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		log.Debug("No recommended tokens found")
		return
	}

	signals := AnalyzeSignals(tokens, cfg, time.Now())
	minConfidence := MinConfidenceForRisk(cfg.RiskLevel)

	for i := range signals {
		if signals[i].Confidence >= minConfidence {
			// One trade per cycle.
			e.executeSignal(&signals[i], cfg)
			break
		}
	}
}

func (e *Engine) executeSignal(signal *TradeSignal, cfg *models.BotConfig) {
	log.Infof("Executing %s for %s, confidence %d%%", signal.Action, signal.Token.Symbol, signal.Confidence)

	result := e.sim.Simulate(signal.Action, signal)
	if !result.Success {
		return
	}

	tx := &models.Transaction{
		UserID:    cfg.UserID,
		Type:      models.TxTypeTrade,
		Amount:    signal.Amount,
		Token:     signal.Token.Symbol,
		Signature: result.Signature,
		Status:    models.TxStatusConfirmed,
		Metadata: models.JSONB{
			"action":     signal.Action,
			"token_mint": signal.Token.Mint,
			"price":      result.Price,
			"confidence": signal.Confidence,
			"reason":     signal.Reason,
		},
	}
	if err := e.store.CreateTransaction(tx); err != nil {
		log.Errorf("Failed to record trade transaction: %v", err)
		return
	}

	now := time.Now()
	cfg.CurrentTrades++
	cfg.LastTradeAt = &now

	profit := result.Amount - signal.Amount
	if profit > 0 {
		cfg.TotalProfit += profit
	} else if profit < 0 {
		cfg.TotalLoss += -profit
	}

	if err := e.store.SaveBot(cfg); err != nil {
		log.Errorf("Failed to update bot counters: %v", err)
		return
	}

	if e.OnTrade != nil {
		e.OnTrade(TradeEvent{
			UserID:     cfg.UserID,
			Action:     signal.Action,
			TokenMint:  signal.Token.Mint,
			Symbol:     signal.Token.Symbol,
			Amount:     result.Amount,
			Price:      result.Price,
			Confidence: signal.Confidence,
			Reason:     signal.Reason,
			Signature:  result.Signature,
			ExecutedAt: now,
		})
	}
}

package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"

	"spinnerbot/internal/bot"
	"spinnerbot/internal/handlers"
	"spinnerbot/internal/routes"
	"spinnerbot/pkg/config"
	"spinnerbot/pkg/pumpfun"
	"spinnerbot/pkg/solana"
)

const tradeEventQueue = "bot_trade_events"

func main() {
	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ (optional, will log warning if not configured)
	var publisher *config.Publisher
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		var err error
		publisher, err = config.NewPublisher()
		if err != nil {
			log.Fatal("Create publisher failed:", err)
		}
		defer publisher.Close()
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	// Token feed
	tokenService := pumpfun.NewService(config.DB, pumpfun.NewClient())

	// Trading engine
	store := bot.NewStore(config.DB)
	sim := bot.NewSimulator(rand.New(rand.NewSource(time.Now().UnixNano())))
	rpcClient := solana.RPCClient()
	engine := bot.NewEngine(store, tokenService, func(address string) (float64, error) {
		return solana.GetSolBalance(rpcClient, address)
	}, sim)

	hub := bot.NewHub()
	engine.OnTrade = func(event bot.TradeEvent) {
		hub.Publish(event)
		if publisher != nil {
			if err := publisher.Publish(tradeEventQueue, event); err != nil {
				logrus.Errorf("Failed to publish trade event: %v", err)
			}
		}
	}

	// Resume bots flagged active in the database, then keep the runner map
	// converged on a schedule.
	engine.Reconcile()
	defer engine.Shutdown()

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", engine.Reconcile); err != nil {
		log.Fatal("Failed to schedule reconciliation:", err)
	}
	c.Start()
	defer c.Stop()

	handlers.SetEngine(engine)
	handlers.SetTokenService(tokenService)
	handlers.SetHub(hub)

	// Reject unknown keys in request bodies.
	gin.EnableJsonDecoderDisallowUnknownFields()

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

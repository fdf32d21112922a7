package main

import (
	"encoding/json"

	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"

	"spinnerbot/internal/bot"
	"spinnerbot/pkg/config"
	"spinnerbot/pkg/pumpfun"
)

const (
	tradeEventQueue  = "bot_trade_events"
	feedRefreshLimit = 20
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	tokenService := pumpfun.NewService(config.DB, pumpfun.NewClient())

	// Keep the local token table fresh so engine cycles rank on recent data.
	c := cron.New()
	_, err := c.AddFunc("@every 30s", func() {
		tokens, err := tokenService.NewTokens(feedRefreshLimit)
		if err != nil {
			logrus.Errorf("Token feed refresh failed: %v", err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"count": len(tokens),
		}).Info("Token feed refreshed")
	})
	if err != nil {
		logrus.Fatal("Failed to schedule feed refresh: ", err)
	}
	c.Start()
	defer c.Stop()

	// Create consumer for trade event queue
	msgConsumer, err := config.NewConsumer(tradeEventQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Trade event worker started, waiting for messages...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var event bot.TradeEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			logrus.Errorf("Failed to unmarshal trade event: %v", err)
			return err
		}

		logrus.WithFields(logrus.Fields{
			"user_id":    event.UserID,
			"action":     event.Action,
			"token_mint": event.TokenMint,
			"symbol":     event.Symbol,
			"amount":     event.Amount,
			"price":      event.Price,
			"confidence": event.Confidence,
			"signature":  event.Signature,
		}).Info("Trade executed")
		return nil
	})
	if err != nil {
		logrus.Errorf("Consumer stopped: %v", err)
	}
}

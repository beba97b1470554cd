package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hotelbooking/config"
	"hotelbooking/internal/email"
	"hotelbooking/internal/kafka"
	"hotelbooking/internal/logger"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic)
	defer consumer.Close()

	sender := email.NewSender(cfg.SMTP)

	logger.InfoLogger.WithField("topic", cfg.Kafka.BookingTopic).Info("worker started")

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkago.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.WarnLogger.WithField("offset", msg.Offset).Warnf("skipping malformed event: %v", err)
			return nil
		}

		if err := sender.Send(ctx, event); err != nil {
			logger.ErrorLogger.WithField("booking_id", event.BookingID).Errorf("failed to send notification: %v", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hotelbooking/config"
	"hotelbooking/internal/bootstrap"
	"hotelbooking/internal/gateway"

	"github.com/joho/godotenv"
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

	proxy, err := gateway.New(cfg.Gateway.BookingURL, cfg.Gateway.HotelURL)
	if err != nil {
		log.Fatalf("build proxy: %v", err)
	}

	if err := bootstrap.Run(ctx, cfg.Gateway.Address, proxy); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

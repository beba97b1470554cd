package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelbooking/api"
	"hotelbooking/config"
	"hotelbooking/internal/bootstrap"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/service/hotel"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	hotelRepo := repository.NewHotelRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)

	leaseTTL := time.Duration(cfg.Hotel.LeaseTTLMinutes) * time.Minute
	hotelService := hotel.NewHotelService(hotelRepo, roomRepo, leaseTTL)

	router := gin.Default()
	router.Use(api.RequestID())

	handler := api.NewHotelHandler(hotelService)
	handler.Register(router.Group("/api/hotels"), router.Group("/api/rooms"))

	if err := bootstrap.Run(ctx, cfg.Hotel.Address, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

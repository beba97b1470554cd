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
	"hotelbooking/internal/auth"
	"hotelbooking/internal/bootstrap"
	"hotelbooking/internal/cache"
	"hotelbooking/internal/client"
	"hotelbooking/internal/kafka"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/service/booking"

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

	breakers := client.NewBreakerRegistry(cfg.Client.BreakerFailures, time.Duration(cfg.Client.BreakerCooldownMS)*time.Millisecond)
	hotelClient := client.NewHotelClient(cfg.Client, breakers)
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.RoomsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	authManager := auth.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	bookingService := booking.NewBookingService(
		bookingRepo,
		hotelClient,
		cfg.Booking.DefaultPageSize,
		booking.WithEvents(producer, cfg.Kafka.BookingTopic),
	)
	availabilityService := booking.NewAvailabilityService(bookingRepo, hotelClient, redisCache)

	router := gin.Default()
	router.Use(api.RequestID())

	authHandler := api.NewAuthHandler(userRepo, authManager)
	authHandler.Register(router.Group("/api/bookings/user"))

	authorized := router.Group("/api/bookings", api.AuthMiddleware(authManager))
	api.NewBookingHandler(bookingService).Register(authorized.Group("/bookings"))
	api.NewAvailabilityHandler(availabilityService).Register(authorized.Group("/availability"))
	authHandler.RegisterAdmin(authorized.Group("/admin/users", api.RequireAdmin()))

	bootstrap.MountSwagger(router, cfg.Booking.SwaggerDir)

	if err := bootstrap.Run(ctx, cfg.Booking.Address, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/travelbook/config"
	"github.com/zvrva/travelbook/internal/bootstrap"
	"github.com/zvrva/travelbook/internal/cache"
	"github.com/zvrva/travelbook/internal/kafka"
	"github.com/zvrva/travelbook/internal/repository"
	"github.com/zvrva/travelbook/internal/service/offerings"
	"github.com/zvrva/travelbook/internal/service/reservation"
)

func main() {
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.OfferingsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	ledger := repository.NewInventoryLedger(pool)
	offeringRepo := repository.NewOfferingRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool, ledger)

	offeringService := offerings.NewOfferingService(offeringRepo, redisCache)
	reservationService := reservation.NewReservationService(
		reservationRepo,
		offeringRepo,
		redisCache,
		producer,
		cfg.Kafka.ReservationsTopic,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, offeringService, reservationService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

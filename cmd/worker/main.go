package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/zvrva/travelbook/config"
	"github.com/zvrva/travelbook/internal/cache"
	"github.com/zvrva/travelbook/internal/email"
	"github.com/zvrva/travelbook/internal/kafka"
	"github.com/zvrva/travelbook/internal/repository"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.OfferingsCacheTTL)*time.Second)

	ledger := repository.NewInventoryLedger(pool)
	offeringRepo := repository.NewOfferingRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool, ledger)
	reservationService := reservation.NewReservationService(
		reservationRepo,
		offeringRepo,
		redisCache,
		producer,
		cfg.Kafka.ReservationsTopic,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.ReservationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute)
	defer auditTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-auditTicker.C:
			drift, err := reservationService.AuditInventory(ctx)
			if err != nil {
				log.Printf("inventory audit error: %v", err)
				continue
			}
			for _, d := range drift {
				log.Printf("inventory drift on offering %s: available=%d confirmed=%d total=%d", d.Code, d.AvailableSeats, d.ConfirmedSeats, d.TotalSeats)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carparkly/carparkly-backend-api-final/internal/app"
	"github.com/carparkly/carparkly-backend-api-final/internal/booking"
	"github.com/carparkly/carparkly-backend-api-final/internal/config"
	"github.com/carparkly/carparkly-backend-api-final/internal/db"
	"github.com/carparkly/carparkly-backend-api-final/internal/events"
	"github.com/carparkly/carparkly-backend-api-final/internal/notification"
)

const notificationQueue = "carparkly.notifications"

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Redis is optional. Without it logout revocation is disabled but
	// the API stays up.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = db.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("redis unavailable, token blacklist disabled: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// RabbitMQ is optional as well. Without it lifecycle events and
	// notifications are skipped.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("rabbitmq unavailable, events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	container, err := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,

		DBPool: pool,
		Redis:  rdb,
		Events: publisher,

		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTAccessTokenTTL,
		BcryptCost: cfg.BcryptCost,

		OmisePublicKey:  cfg.OmisePublicKey,
		OmiseSecretKey:  cfg.OmiseSecretKey,
		PaymentCurrency: cfg.PaymentCurrency,

		UploadDir: cfg.UploadDir,
	})
	if err != nil {
		log.Fatalf("failed to init application: %v", err)
	}

	// Background sweeper that cancels pending bookings left unpaid.
	sweeper := booking.NewSweeper(container.BookingService, cfg.BookingSweepInterval)
	go sweeper.Run(ctx)

	// Notification worker that turns booking/payment events into rows.
	if publisher != nil {
		consumer := notification.NewConsumer(notification.ConsumerConfig{
			URL:      cfg.AMQPURL,
			Exchange: cfg.AMQPExchange,
			Queue:    notificationQueue,
		}, container.NotificationService)
		if err := consumer.Connect(); err != nil {
			log.Printf("notification consumer disabled: %v", err)
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.Run(ctx); err != nil {
					log.Printf("notification consumer stopped: %v", err)
				}
			}()
		}
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	bookingsrepo "staybook/internal/bookings/repository"
	listingsrepo "staybook/internal/listings/repository"
	"staybook/internal/notifications"
	"staybook/pkg/config"
	"staybook/pkg/kafka"
	kafkaconfig "staybook/pkg/kafka/config"
	kafkamiddleware "staybook/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting notification worker")

	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	mailer := notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.Log)
	worker := notifications.NewWorker(
		bookingsrepo.NewMongoBookingRepository(cfg),
		listingsrepo.NewMongoListingRepository(cfg),
		mailer,
		cfg.Log,
	)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.NotificationsTopic,
		cfg.NotificationsGroupID,
		cfg.NotificationsDLQTopic,
		worker.Handler(),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
	metrics := kafkamiddleware.NewMetrics()
	consumer.Use(kafkamiddleware.MetricsConsumerMiddleware(metrics))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}

	consumed, failed := metrics.Consumed()
	cfg.Log.Info("Notification worker stopped",
		"consumed", consumed,
		"failed", failed,
		"avg_consume_duration", metrics.AvgConsumeDuration().String(),
	)
}

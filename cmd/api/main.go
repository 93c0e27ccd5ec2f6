package main

import (
	bookingshandler "staybook/internal/bookings/handler"
	bookingsrepo "staybook/internal/bookings/repository"
	bookingsservice "staybook/internal/bookings/service"
	bookingsvalidator "staybook/internal/bookings/validator"
	listingshandler "staybook/internal/listings/handler"
	listingsrepo "staybook/internal/listings/repository"
	listingsservice "staybook/internal/listings/service"
	listingsvalidator "staybook/internal/listings/validator"
	"staybook/internal/notifications"
	paymentsgateway "staybook/internal/payments/gateway"
	paymentshandler "staybook/internal/payments/handler"
	paymentsrepo "staybook/internal/payments/repository"
	paymentsservice "staybook/internal/payments/service"
	reviewshandler "staybook/internal/reviews/handler"
	reviewsrepo "staybook/internal/reviews/repository"
	reviewsservice "staybook/internal/reviews/service"
	"staybook/pkg/app"
	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/contracts"
	"staybook/pkg/kafka"
	kafkaconfig "staybook/pkg/kafka/config"
	kafkamiddleware "staybook/pkg/kafka/middleware"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting API service")

	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	metrics := kafkamiddleware.NewMetrics()
	producer := initProducer(cfg, metrics)
	defer producer.Close()

	handlers := initHandlers(cfg, producer)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handlers...)
	serverApp.Run()

	published, failed := metrics.Published()
	cfg.Log.Info("Producer metrics",
		"published", published,
		"failed", failed,
		"avg_publish_duration", metrics.AvgPublishDuration().String(),
	)
}

func initProducer(cfg *config.Config, metrics *kafkamiddleware.Metrics) *kafka.Producer {
	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotificationsTopic, cfg.NotificationsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafkamiddleware.MetricsProducerMiddleware(metrics))

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.NotificationsTopic)
	return producer
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) []contracts.Handler {
	dispatcher := notifications.NewKafkaDispatcher(producer, cfg.Log)

	listingRepo := listingsrepo.NewMongoListingRepository(cfg)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	reviewRepo := reviewsrepo.NewMongoReviewRepository(cfg)
	paymentRepo := paymentsrepo.NewMongoPaymentRepository(cfg)

	listingService := listingsservice.NewListingService(
		listingRepo,
		bookingRepo,
		listingsvalidator.NewListingValidator(),
		cfg,
	)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		listingRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		dispatcher,
		cfg,
	)

	reviewService := reviewsservice.NewReviewService(reviewRepo, listingRepo, cfg)

	gatewayClient := client.NewHttpClient(cfg.GatewayBaseURL, cfg.GatewayTimeout)
	paymentGateway := paymentsgateway.NewHTTPGateway(gatewayClient, cfg.GatewaySecretKey, cfg.Log)
	paymentService := paymentsservice.NewPaymentService(paymentRepo, bookingService, paymentGateway, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		listingshandler.NewListingHandler(listingService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, cfg.Log),
		paymentshandler.NewPaymentHandler(paymentService, cfg.Log),
	}
}

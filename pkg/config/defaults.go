package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "staybook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCurrencyCode = "USD"

	DefaultNotificationsTopic    = "booking-confirmations"
	DefaultNotificationsDLQTopic = "dlq-booking-confirmations"
	DefaultNotificationsGroupID  = "staybook-notifier"

	DefaultSMTPHost = "localhost"
	DefaultSMTPPort = 25
	DefaultSMTPFrom = "bookings@staybook.local"

	DefaultGatewayTimeout = 15 * time.Second

	DefaultPaginationLimit = 100
)

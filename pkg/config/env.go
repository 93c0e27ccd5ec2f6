package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCurrencyCode = "CURRENCY_CODE"

	EnvNotificationsTopic    = "NOTIFICATIONS_TOPIC"
	EnvNotificationsDLQTopic = "NOTIFICATIONS_DLQ_TOPIC"
	EnvNotificationsGroupID  = "NOTIFICATIONS_GROUP_ID"

	EnvSMTPHost = "SMTP_HOST"
	EnvSMTPPort = "SMTP_PORT"
	EnvSMTPFrom = "SMTP_FROM"

	EnvGatewayBaseURL   = "PAYMENT_GATEWAY_BASE_URL"
	EnvGatewaySecretKey = "PAYMENT_GATEWAY_SECRET_KEY"
	EnvGatewayTimeout   = "PAYMENT_GATEWAY_TIMEOUT"
)

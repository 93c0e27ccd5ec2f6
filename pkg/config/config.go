package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"staybook/pkg/client"
	"staybook/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CurrencyCode string

	NotificationsTopic    string
	NotificationsDLQTopic string
	NotificationsGroupID  string

	SMTPHost string
	SMTPPort int
	SMTPFrom string

	GatewayBaseURL   string
	GatewaySecretKey string
	GatewayTimeout   time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		CurrencyCode: getEnvStr(EnvCurrencyCode, DefaultCurrencyCode),

		NotificationsTopic:    getEnvStr(EnvNotificationsTopic, DefaultNotificationsTopic),
		NotificationsDLQTopic: getEnvStr(EnvNotificationsDLQTopic, DefaultNotificationsDLQTopic),
		NotificationsGroupID:  getEnvStr(EnvNotificationsGroupID, DefaultNotificationsGroupID),

		SMTPHost: getEnvStr(EnvSMTPHost, DefaultSMTPHost),
		SMTPPort: getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPFrom: getEnvStr(EnvSMTPFrom, DefaultSMTPFrom),

		GatewayBaseURL:   getEnvStr(EnvGatewayBaseURL, ""),
		GatewaySecretKey: getEnvStr(EnvGatewaySecretKey, ""),
		GatewayTimeout:   getEnvDuration(EnvGatewayTimeout, DefaultGatewayTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(cfg.CurrencyCode) != 3 {
		errs = append(errs, fmt.Sprintf("CurrencyCode must be a 3-letter ISO code, got: %s", cfg.CurrencyCode))
	}

	if cfg.NotificationsTopic == "" {
		errs = append(errs, "NotificationsTopic cannot be empty")
	}
	if cfg.NotificationsGroupID == "" {
		errs = append(errs, "NotificationsGroupID cannot be empty")
	}

	if cfg.SMTPHost == "" {
		errs = append(errs, "SMTPHost cannot be empty")
	}
	if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
	}
	if cfg.SMTPFrom == "" {
		errs = append(errs, "SMTPFrom cannot be empty")
	}

	if cfg.GatewayTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("GatewayTimeout must be positive, got: %s", cfg.GatewayTimeout))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"currency_code", cfg.CurrencyCode,
		"notifications_topic", cfg.NotificationsTopic,
		"notifications_dlq_topic", cfg.NotificationsDLQTopic,
		"notifications_group_id", cfg.NotificationsGroupID,
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
		"smtp_from", cfg.SMTPFrom,
		"gateway_base_url", cfg.GatewayBaseURL,
		"gateway_secret_set", cfg.GatewaySecretKey != "",
		"gateway_timeout", cfg.GatewayTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}

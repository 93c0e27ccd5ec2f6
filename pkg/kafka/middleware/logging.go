package kafkamiddleware

import (
	"context"
	"time"

	"staybook/pkg/kafka"
	"staybook/pkg/logger"
)

// LoggingProducerMiddleware logs message publishing operations.
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)
		duration := time.Since(start)

		if err != nil {
			log.Error("failed to publish message",
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration", duration.String(),
				"error", err)
		} else {
			log.Info("published message",
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration", duration.String())
		}

		return err
	}
}

// LoggingConsumerMiddleware logs message consumption operations.
func LoggingConsumerMiddleware(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)
		duration := time.Since(start)

		if err != nil {
			log.Error("failed to process message",
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"retry_count", msg.GetRetryCount(),
				"duration", duration.String(),
				"error", err)
		} else {
			log.Info("processed message",
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration", duration.String())
		}

		return err
	}
}

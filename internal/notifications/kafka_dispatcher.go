package notifications

import (
	"context"
	"fmt"
	"time"

	"staybook/pkg/kafka"
	"staybook/pkg/logger"
)

const dispatchSource = "staybook-api"

type kafkaDispatcher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewKafkaDispatcher returns a Dispatcher that publishes jobs to the
// booking confirmations topic, keyed by booking ID so retries for the
// same booking stay ordered.
func NewKafkaDispatcher(producer *kafka.Producer, log *logger.Logger) Dispatcher {
	return &kafkaDispatcher{
		producer: producer,
		log:      log,
	}
}

func (d *kafkaDispatcher) EnqueueBookingConfirmation(ctx context.Context, job BookingConfirmationJob) (string, error) {
	if job.BookingID == "" {
		return "", fmt.Errorf("booking ID cannot be empty")
	}
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now().UTC()
	}

	builder := kafka.NewMessage().
		WithKey(job.BookingID).
		WithValue(job).
		WithEventType(job.EventType).
		WithSource(dispatchSource)

	msg := builder.Build()
	if err := d.producer.Publish(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to enqueue booking confirmation: %w", err)
	}

	d.log.Info("booking confirmation enqueued",
		"booking_id", job.BookingID,
		"event_type", job.EventType,
		"event_id", msg.GetEventID(),
	)
	return msg.GetEventID(), nil
}

package kafkamiddleware

import (
	"context"
	"sync/atomic"
	"time"

	"staybook/pkg/kafka"
)

// Metrics tracks Kafka operation counters. Counters are updated atomically
// so the struct can be shared between producer and consumer middleware.
type Metrics struct {
	MessagesPublished       int64
	MessagesPublishedFailed int64
	PublishDurationTotal    int64 // nanoseconds

	MessagesConsumed       int64
	MessagesConsumedFailed int64
	ConsumeDurationTotal   int64 // nanoseconds
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.MessagesPublished, 0)
	atomic.StoreInt64(&m.MessagesPublishedFailed, 0)
	atomic.StoreInt64(&m.PublishDurationTotal, 0)
	atomic.StoreInt64(&m.MessagesConsumed, 0)
	atomic.StoreInt64(&m.MessagesConsumedFailed, 0)
	atomic.StoreInt64(&m.ConsumeDurationTotal, 0)
}

// Published returns the publish counters.
func (m *Metrics) Published() (ok, failed int64) {
	return atomic.LoadInt64(&m.MessagesPublished), atomic.LoadInt64(&m.MessagesPublishedFailed)
}

// Consumed returns the consume counters.
func (m *Metrics) Consumed() (ok, failed int64) {
	return atomic.LoadInt64(&m.MessagesConsumed), atomic.LoadInt64(&m.MessagesConsumedFailed)
}

// AvgPublishDuration returns the average publish duration so far.
func (m *Metrics) AvgPublishDuration() time.Duration {
	published := atomic.LoadInt64(&m.MessagesPublished)
	if published == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.PublishDurationTotal)
	return time.Duration(total / published)
}

// AvgConsumeDuration returns the average consume duration so far.
func (m *Metrics) AvgConsumeDuration() time.Duration {
	consumed := atomic.LoadInt64(&m.MessagesConsumed)
	if consumed == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.ConsumeDurationTotal)
	return time.Duration(total / consumed)
}

// MetricsProducerMiddleware records publish counts and latency.
func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		atomic.AddInt64(&m.PublishDurationTotal, int64(time.Since(start)))
		if err != nil {
			atomic.AddInt64(&m.MessagesPublishedFailed, 1)
		} else {
			atomic.AddInt64(&m.MessagesPublished, 1)
		}

		return err
	}
}

// MetricsConsumerMiddleware records consume counts and latency.
func MetricsConsumerMiddleware(m *Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		atomic.AddInt64(&m.ConsumeDurationTotal, int64(time.Since(start)))
		if err != nil {
			atomic.AddInt64(&m.MessagesConsumedFailed, 1)
		} else {
			atomic.AddInt64(&m.MessagesConsumed, 1)
		}

		return err
	}
}

package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkaconfig "staybook/pkg/kafka/config"
	"staybook/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Consumer wraps a kafka-go reader with retry, DLQ and middleware support.
// Messages that exhaust their retries are forwarded to the DLQ topic and
// committed so the group can make progress.
type Consumer struct {
	reader       *kafka.Reader
	dlqWriter    *kafka.Writer
	handler      MessageHandler
	topic        string
	dlqTopic     string
	maxRetries   int
	retryBackoff time.Duration
	log          *logger.Logger
	middleware   []ConsumerMiddleware
	closed       bool
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

// ConsumerMiddleware intercepts message handling.
type ConsumerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewConsumer(cfg *kafkaconfig.Config, topic string, groupID string, dlqTopic string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		StartOffset:    cfg.ConsumerStartOffset,
		MinBytes:       cfg.ConsumerMinBytes,
		MaxBytes:       cfg.ConsumerMaxBytes,
		MaxWait:        cfg.ConsumerMaxWait,
		CommitInterval: cfg.ConsumerCommitInterval,
		Logger:         kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf("kafka reader: "+msg, args...))
		}),
	})

	consumer := &Consumer{
		reader:       reader,
		handler:      handler,
		topic:        topic,
		dlqTopic:     dlqTopic,
		maxRetries:   cfg.ConsumerMaxRetries,
		retryBackoff: cfg.ConsumerRetryBackoff,
		log:          log,
	}

	if dlqTopic != "" {
		consumer.dlqWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        dlqTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				log.Error(fmt.Sprintf("kafka dlq writer: "+msg, args...))
			}),
		}
	}

	return consumer, nil
}

func (c *Consumer) Use(middleware ConsumerMiddleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, middleware)
}

// Start consumes messages until the context is cancelled or Close is called.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.mu.RUnlock()

	c.log.Info("kafka consumer started", "topic", c.topic)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			c.mu.RLock()
			closed := c.closed
			c.mu.RUnlock()
			if closed {
				return ErrConsumerClosed
			}
			c.log.Error("failed to fetch message", "error", err)
			continue
		}

		c.wg.Add(1)
		c.processMessage(ctx, kafkaMsg)
		c.wg.Done()

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("failed to commit message",
				"topic", c.topic,
				"partition", kafkaMsg.Partition,
				"offset", kafkaMsg.Offset,
				"error", err)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, kafkaMsg kafka.Message) {
	msg := fromKafkaMessage(kafkaMsg)

	handler := c.handler
	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}

	for attempt := 0; ; attempt++ {
		err := handler(ctx, msg)
		if err == nil {
			return
		}

		if ClassifyError(err) != ErrorTypeTransient {
			c.log.Error("permanent failure, sending to DLQ",
				"topic", c.topic,
				"key", msg.Key,
				"error", err)
			c.sendToDLQ(ctx, msg, err)
			return
		}

		if attempt >= c.maxRetries {
			c.log.Error("retries exhausted, sending to DLQ",
				"topic", c.topic,
				"key", msg.Key,
				"attempts", attempt+1,
				"error", err)
			c.sendToDLQ(ctx, msg, err)
			return
		}

		c.log.Warn("transient failure, retrying",
			"topic", c.topic,
			"key", msg.Key,
			"attempt", attempt+1,
			"error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.retryBackoff * time.Duration(attempt+1)):
		}
		msg.IncrementRetryCount()
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg Message, handlerErr error) {
	if c.dlqWriter == nil {
		return
	}

	msg.Headers[HeaderOriginalTopic] = c.topic
	msg.Headers["dlq-error"] = handlerErr.Error()
	msg.Headers["dlq-timestamp"] = time.Now().Format(time.RFC3339)

	if err := c.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg)); err != nil {
		c.log.Error("failed to write to DLQ",
			"dlq_topic", c.dlqTopic,
			"key", msg.Key,
			"error", err)
	}
}

func fromKafkaMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		Timestamp: kafkaMsg.Time,
	}
	for _, h := range kafkaMsg.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	err := c.reader.Close()
	if c.dlqWriter != nil {
		if dlqErr := c.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}

func (c *Consumer) Stats() kafka.ReaderStats {
	return c.reader.Stats()
}

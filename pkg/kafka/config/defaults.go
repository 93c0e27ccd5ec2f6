package kafkaconfig

import "time"

const (
	DefaultBrokers = "localhost:9092"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // require all replicas
	DefaultProducerCompression  = "snappy"

	DefaultConsumerStartOffset    = -2 // oldest, so jobs survive consumer downtime
	DefaultConsumerMinBytes       = 1
	DefaultConsumerMaxBytes       = 10 * 1024 * 1024 // 10MB
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 1 * time.Second
	DefaultConsumerMaxRetries     = 3
	DefaultConsumerRetryBackoff   = 2 * time.Second
)

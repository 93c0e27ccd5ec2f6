package kafkaconfig

const (
	EnvBrokers = "KAFKA_BROKERS"

	EnvProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"

	EnvConsumerStartOffset    = "KAFKA_CONSUMER_START_OFFSET"
	EnvConsumerMinBytes       = "KAFKA_CONSUMER_MIN_BYTES"
	EnvConsumerMaxBytes       = "KAFKA_CONSUMER_MAX_BYTES"
	EnvConsumerMaxWait        = "KAFKA_CONSUMER_MAX_WAIT"
	EnvConsumerCommitInterval = "KAFKA_CONSUMER_COMMIT_INTERVAL"
	EnvConsumerMaxRetries     = "KAFKA_CONSUMER_MAX_RETRIES"
	EnvConsumerRetryBackoff   = "KAFKA_CONSUMER_RETRY_BACKOFF"
)

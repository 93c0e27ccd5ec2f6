package kafka

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrConsumerClosed = errors.New("kafka consumer is closed")
	ErrInvalidMessage = errors.New("invalid message")
	ErrEmptyKey       = errors.New("message key cannot be empty")
	ErrEmptyValue     = errors.New("message value cannot be empty")
)

// ErrorType classifies a processing failure for retry decisions.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeTransient
	ErrorTypePermanent
)

// ProcessingError wraps a handler failure with its retry classification.
type ProcessingError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func NewTransientError(message string, err error) *ProcessingError {
	return &ProcessingError{Type: ErrorTypeTransient, Message: message, Err: err}
}

func NewPermanentError(message string, err error) *ProcessingError {
	return &ProcessingError{Type: ErrorTypePermanent, Message: message, Err: err}
}

var transientPatterns = []string{
	"connection refused",
	"timeout",
	"deadline exceeded",
	"no such host",
	"network is unreachable",
	"broken pipe",
	"connection reset",
	"i/o timeout",
	"temporary failure",
}

// ClassifyError decides whether a failure is worth retrying. Explicitly
// classified errors win; otherwise well-known network failure strings are
// treated as transient and everything else as permanent.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return procErr.Type
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return ErrorTypeTransient
		}
	}

	return ErrorTypePermanent
}

// ShouldRetry determines if a failed message should be retried.
func ShouldRetry(err error, currentRetries, maxRetries int) bool {
	if err == nil || currentRetries >= maxRetries {
		return false
	}
	return ClassifyError(err) == ErrorTypeTransient
}

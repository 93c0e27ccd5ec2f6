package kafka

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypeUnknown},
		{name: "explicit transient", err: NewTransientError("broker down", nil), want: ErrorTypeTransient},
		{name: "explicit permanent", err: NewPermanentError("bad payload", nil), want: ErrorTypePermanent},
		{name: "wrapped transient", err: fmt.Errorf("handling: %w", NewTransientError("broker down", nil)), want: ErrorTypeTransient},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: ErrorTypeTransient},
		{name: "deadline exceeded", err: errors.New("context deadline exceeded"), want: ErrorTypeTransient},
		{name: "unclassified", err: errors.New("schema mismatch"), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("broker down", nil)

	if !ShouldRetry(transient, 0, 3) {
		t.Error("transient error under the retry limit should retry")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("exhausted retries should not retry")
	}
	if ShouldRetry(NewPermanentError("bad payload", nil), 0, 3) {
		t.Error("permanent error should never retry")
	}
	if ShouldRetry(nil, 0, 3) {
		t.Error("nil error should not retry")
	}
}

func TestProcessingErrorUnwrap(t *testing.T) {
	cause := errors.New("io timeout")
	err := NewTransientError("send failed", cause)

	if !errors.Is(err, cause) {
		t.Error("ProcessingError should unwrap to its cause")
	}
	if err.Error() != "send failed: io timeout" {
		t.Errorf("Error() = %q", err.Error())
	}
}

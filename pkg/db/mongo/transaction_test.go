package mongo

import (
	"context"
	"testing"
	"time"
)

func TestWithDeadlineAddsTimeout(t *testing.T) {
	ctx, cancel := withDeadline(context.Background(), 5*time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline to be set")
	}
	if remaining := time.Until(deadline); remaining > 5*time.Second {
		t.Errorf("deadline %v further out than the configured timeout", remaining)
	}
}

func TestWithDeadlineKeepsCallerDeadline(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), time.Minute)
	defer parentCancel()
	want, _ := parent.Deadline()

	ctx, cancel := withDeadline(parent, 5*time.Second)
	defer cancel()

	got, ok := ctx.Deadline()
	if !ok || !got.Equal(want) {
		t.Errorf("deadline = %v, want caller's %v", got, want)
	}
}

func TestWithDeadlineZeroTimeout(t *testing.T) {
	ctx, cancel := withDeadline(context.Background(), 0)
	defer cancel()

	if _, ok := ctx.Deadline(); ok {
		t.Error("zero timeout must not impose a deadline")
	}
}

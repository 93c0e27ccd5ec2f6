package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed must not be terminal")
	}
	if !StatusCancelled.IsTerminal() || !StatusCompleted.IsTerminal() {
		t.Error("cancelled and completed must be terminal")
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusConfirmed {
		t.Errorf("got %s, want confirmed", status)
	}

	if _, err := ParseBookingStatus("archived"); err == nil {
		t.Error("expected error for unknown status")
	}
}

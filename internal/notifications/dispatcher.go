package notifications

import (
	"context"
	"time"
)

// Event types carried in the Kafka event-type header.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
)

// BookingConfirmationJob asks the notification worker to email the guest
// about a booking. The worker loads the booking and listing itself, so a
// stale payload cannot leak outdated details into the email.
type BookingConfirmationJob struct {
	BookingID  string    `json:"booking_id"`
	EventType  string    `json:"event_type"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Dispatcher enqueues notification jobs and returns a job handle (the
// event ID) for tracing. Delivery is asynchronous and best-effort from
// the caller's point of view: a failed enqueue must not fail the booking
// operation that triggered it.
type Dispatcher interface {
	EnqueueBookingConfirmation(ctx context.Context, job BookingConfirmationJob) (string, error)
}

package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingserrors "staybook/internal/bookings/errors"
	bookingsrepo "staybook/internal/bookings/repository"
	listingsrepo "staybook/internal/listings/repository"
	"staybook/pkg/kafka"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

// Worker turns queued confirmation jobs into guest emails. It loads the
// booking and listing fresh for every job.
type Worker struct {
	bookings bookingsrepo.BookingRepository
	listings listingsrepo.ListingRepository
	mailer   Mailer
	log      *logger.Logger
}

func NewWorker(
	bookings bookingsrepo.BookingRepository,
	listings listingsrepo.ListingRepository,
	mailer Mailer,
	log *logger.Logger,
) *Worker {
	return &Worker{
		bookings: bookings,
		listings: listings,
		mailer:   mailer,
		log:      log,
	}
}

// Handler adapts the worker to the consumer's message contract.
func (w *Worker) Handler() kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var job BookingConfirmationJob
		if err := msg.DecodeValue(&job); err != nil {
			return kafka.NewPermanentError("failed to decode confirmation job", err)
		}
		return w.Process(ctx, job)
	}
}

func (w *Worker) Process(ctx context.Context, job BookingConfirmationJob) error {
	if job.BookingID == "" {
		return kafka.NewPermanentError("confirmation job has no booking ID", nil)
	}

	booking, err := w.bookings.FindByID(ctx, job.BookingID)
	if err != nil {
		// A booking that no longer exists will never exist again.
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return kafka.NewPermanentError("booking not found for confirmation job", err)
		}
		return kafka.NewTransientError("failed to load booking", err)
	}

	listing, err := w.listings.FindByID(ctx, booking.ListingID)
	if err != nil {
		return kafka.NewTransientError("failed to load listing", err)
	}

	recipient := guestEmail(booking.GuestID)
	if recipient == "" {
		w.log.Warn("no email address for guest, skipping notification",
			"booking_id", booking.ID,
			"guest_id", booking.GuestID,
		)
		return nil
	}

	subject, body := RenderConfirmation(booking, listing)
	if err := w.mailer.Send(ctx, recipient, subject, body); err != nil {
		return kafka.NewTransientError("failed to send confirmation email", err)
	}

	w.log.Info("booking confirmation sent",
		"booking_id", booking.ID,
		"listing_id", listing.ID,
		"event_type", job.EventType,
	)
	return nil
}

// guestEmail returns the guest's address, or empty when the guest
// identifier is not an email.
func guestEmail(guestID string) string {
	if strings.Contains(guestID, "@") {
		return guestID
	}
	return ""
}

// RenderConfirmation builds the confirmation email for a booking.
func RenderConfirmation(booking *model.Booking, listing *model.Listing) (subject, body string) {
	subject = fmt.Sprintf("Booking Confirmation - %s", listing.Title)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear guest,\n\n")
	fmt.Fprintf(&b, "Your booking has been received!\n\n")
	fmt.Fprintf(&b, "Booking Details:\n")
	fmt.Fprintf(&b, "- Listing: %s\n", listing.Title)
	fmt.Fprintf(&b, "- Location: %s, %s\n", listing.City, listing.Country)
	fmt.Fprintf(&b, "- Check-in: %s\n", booking.CheckInDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Check-out: %s\n", booking.CheckOutDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Guests: %d\n", booking.NumberOfGuests)
	fmt.Fprintf(&b, "- Total Price: %s\n", booking.TotalPrice.String())
	fmt.Fprintf(&b, "- Status: %s\n\n", booking.Status)
	fmt.Fprintf(&b, "Thank you for booking with us!\n")

	return subject, b.String()
}

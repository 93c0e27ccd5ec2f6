package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/pkg/kafka"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/money"

	mongotx "staybook/pkg/db/mongo"
)

type mockBookingRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) error { return nil }

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockBookingRepo) Find(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	return nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockBookingRepo) CountForListing(ctx context.Context, listingID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockListingRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Listing, error)
}

func (m *mockListingRepo) Create(ctx context.Context, l *model.Listing) error { return nil }

func (m *mockListingRepo) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockListingRepo) Find(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
	return nil, nil
}

func (m *mockListingRepo) Count(ctx context.Context, filter model.ListingFilter) (int64, error) {
	return 0, nil
}

func (m *mockListingRepo) Update(ctx context.Context, id string, updates *model.ListingUpdate) error {
	return nil
}

func (m *mockListingRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockListingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockMailer struct {
	sendFunc func(ctx context.Context, to, subject, body string) error
	sent     []string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, to, subject, body)
	}
	m.sent = append(m.sent, to)
	return nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "test",
	})
}

func testBooking() *model.Booking {
	return &model.Booking{
		ID:             "66f000000000000000000099",
		ListingID:      "66f000000000000000000001",
		GuestID:        "guest@example.com",
		CheckInDate:    time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 2,
		TotalPrice:     money.MustParse("600.00"),
		Status:         model.StatusConfirmed,
	}
}

func testWorkerListing() *model.Listing {
	active := true
	return &model.Listing{
		ID:       "66f000000000000000000001",
		Title:    "Mountain Cabin Retreat",
		City:     "Chamonix",
		Country:  "France",
		IsActive: &active,
	}
}

func testJob() BookingConfirmationJob {
	return BookingConfirmationJob{
		BookingID:  "66f000000000000000000099",
		EventType:  EventBookingCreated,
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestProcessSendsConfirmation(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return testBooking(), nil
		},
	}
	listings := &mockListingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testWorkerListing(), nil
		},
	}
	mailer := &mockMailer{}
	w := NewWorker(bookings, listings, mailer, testLog())

	if err := w.Process(context.Background(), testJob()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "guest@example.com" {
		t.Errorf("sent = %v, want one mail to guest@example.com", mailer.sent)
	}
}

func TestProcessSkipsNonEmailGuest(t *testing.T) {
	booking := testBooking()
	booking.GuestID = "guest-42"

	bookings := &mockBookingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return booking, nil
		},
	}
	listings := &mockListingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testWorkerListing(), nil
		},
	}
	mailer := &mockMailer{}
	w := NewWorker(bookings, listings, mailer, testLog())

	if err := w.Process(context.Background(), testJob()); err != nil {
		t.Fatalf("skipping a guest without an address must not error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("no mail should be sent, got %v", mailer.sent)
	}
}

func TestProcessMissingBookingIsPermanent(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	w := NewWorker(bookings, &mockListingRepo{}, &mockMailer{}, testLog())

	err := w.Process(context.Background(), testJob())
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Fatalf("got %v, want a permanent error", err)
	}
}

func TestProcessMailerFailureIsTransient(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return testBooking(), nil
		},
	}
	listings := &mockListingRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testWorkerListing(), nil
		},
	}
	mailer := &mockMailer{
		sendFunc: func(ctx context.Context, to, subject, body string) error {
			return errors.New("connection refused")
		},
	}
	w := NewWorker(bookings, listings, mailer, testLog())

	err := w.Process(context.Background(), testJob())
	if kafka.ClassifyError(err) != kafka.ErrorTypeTransient {
		t.Fatalf("got %v, want a transient error", err)
	}
}

func TestProcessEmptyBookingIDIsPermanent(t *testing.T) {
	w := NewWorker(&mockBookingRepo{}, &mockListingRepo{}, &mockMailer{}, testLog())

	err := w.Process(context.Background(), BookingConfirmationJob{})
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Fatalf("got %v, want a permanent error", err)
	}
}

func TestRenderConfirmation(t *testing.T) {
	subject, body := RenderConfirmation(testBooking(), testWorkerListing())

	if subject != "Booking Confirmation - Mountain Cabin Retreat" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{
		"Mountain Cabin Retreat",
		"Chamonix, France",
		"2026-06-01",
		"2026-06-05",
		"600.00",
		"confirmed",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

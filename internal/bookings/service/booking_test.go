package service

import (
	"context"
	"testing"
	"time"

	"staybook/internal/bookings/validator"
	"staybook/internal/notifications"
	"staybook/pkg/config"
	mongotx "staybook/pkg/db/mongo"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/money"
)

type mockBookingRepository struct {
	createFunc       func(ctx context.Context, b *model.Booking) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	findFunc         func(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	countFunc        func(ctx context.Context, filter model.BookingFilter) (int64, error)
	updateFunc       func(ctx context.Context, id string, updates *model.BookingUpdate) error
	updateStatusFunc func(ctx context.Context, id string, status model.BookingStatus) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	b.ID = "66f000000000000000000099"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) Find(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) CountForListing(ctx context.Context, listingID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockListingRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Listing, error)
}

func (m *mockListingRepository) Create(ctx context.Context, l *model.Listing) error { return nil }

func (m *mockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockListingRepository) Find(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
	return []*model.Listing{}, nil
}

func (m *mockListingRepository) Count(ctx context.Context, filter model.ListingFilter) (int64, error) {
	return 0, nil
}

func (m *mockListingRepository) Update(ctx context.Context, id string, updates *model.ListingUpdate) error {
	return nil
}

func (m *mockListingRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockDispatcher struct {
	enqueued []notifications.BookingConfirmationJob
	err      error
}

func (m *mockDispatcher) EnqueueBookingConfirmation(ctx context.Context, job notifications.BookingConfirmationJob) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.enqueued = append(m.enqueued, job)
	return "evt-1", nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.INFO,
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func testListing() *model.Listing {
	active := true
	return &model.Listing{
		ID:            "66f000000000000000000001",
		Title:         "Mountain Cabin Retreat",
		City:          "Chamonix",
		Country:       "France",
		PropertyType:  "cabin",
		PricePerNight: money.MustParse("150.00"),
		MaxGuests:     4,
		IsActive:      &active,
	}
}

func testRequest() *model.BookingRequest {
	return &model.BookingRequest{
		ListingID:      "66f000000000000000000001",
		GuestID:        "guest@example.com",
		CheckInDate:    time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 2,
	}
}

func newTestService(repo *mockBookingRepository, listings *mockListingRepository, dispatcher *mockDispatcher) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, listings, validator.NewBookingValidator(cfg.Log), dispatcher, cfg)
}

func TestCreateComputesPrice(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	var persisted *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			b.ID = "66f000000000000000000099"
			persisted = b
			return nil
		},
	}
	dispatcher := &mockDispatcher{}

	svc := newTestService(repo, listings, dispatcher)

	booking, err := svc.Create(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalPrice != money.MustParse("600.00") {
		t.Errorf("total price = %s, want 600.00 (150.00 x 4 nights)", booking.TotalPrice)
	}
	if booking.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if persisted == nil {
		t.Fatal("booking was not persisted")
	}
	if len(dispatcher.enqueued) != 1 {
		t.Fatalf("expected 1 enqueued notification, got %d", len(dispatcher.enqueued))
	}
	if dispatcher.enqueued[0].BookingID != booking.ID {
		t.Errorf("enqueued booking ID = %s, want %s", dispatcher.enqueued[0].BookingID, booking.ID)
	}
	if dispatcher.enqueued[0].EventType != notifications.EventBookingCreated {
		t.Errorf("event type = %s, want %s", dispatcher.enqueued[0].EventType, notifications.EventBookingCreated)
	}
}

func TestCreateHonorsCallerPrice(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	repo := &mockBookingRepository{}
	svc := newTestService(repo, listings, &mockDispatcher{})

	req := testRequest()
	agreed := money.MustParse("500.00")
	req.TotalPrice = &agreed

	booking, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.TotalPrice != agreed {
		t.Errorf("total price = %s, want caller-supplied 500.00", booking.TotalPrice)
	}
}

func TestCreateRejectsInactiveListing(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			l := testListing()
			inactive := false
			l.IsActive = &inactive
			return l, nil
		},
	}
	created := false
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			created = true
			return nil
		},
	}
	svc := newTestService(repo, listings, &mockDispatcher{})

	_, err := svc.Create(context.Background(), testRequest())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeListingInactive {
		t.Fatalf("got %v, want LISTING_INACTIVE", err)
	}
	if created {
		t.Error("nothing should be persisted when the listing is inactive")
	}
}

func TestCreateRejectsInvalidDateRange(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	svc := newTestService(&mockBookingRepository{}, listings, &mockDispatcher{})

	req := testRequest()
	req.CheckOutDate = req.CheckInDate

	_, err := svc.Create(context.Background(), req)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidDateRange {
		t.Fatalf("same-day stay: got %v, want INVALID_DATE_RANGE", err)
	}

	req = testRequest()
	req.CheckInDate, req.CheckOutDate = req.CheckOutDate, req.CheckInDate

	_, err = svc.Create(context.Background(), req)
	appErr = apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidDateRange {
		t.Fatalf("inverted stay: got %v, want INVALID_DATE_RANGE", err)
	}
}

func TestCreateRejectsOverCapacity(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	svc := newTestService(&mockBookingRepository{}, listings, &mockDispatcher{})

	req := testRequest()
	req.NumberOfGuests = 5

	_, err := svc.Create(context.Background(), req)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeCapacityExceeded {
		t.Fatalf("got %v, want CAPACITY_EXCEEDED", err)
	}
}

func TestCreateRejectsZeroGuests(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	created := false
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			created = true
			return nil
		},
	}
	svc := newTestService(repo, listings, &mockDispatcher{})

	req := testRequest()
	req.NumberOfGuests = 0

	_, err := svc.Create(context.Background(), req)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeCapacityExceeded {
		t.Fatalf("got %v, want CAPACITY_EXCEEDED", err)
	}
	if created {
		t.Error("nothing should be persisted for a zero-guest booking")
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	created := false
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			created = true
			return nil
		},
	}
	svc := newTestService(repo, listings, &mockDispatcher{})

	req := testRequest()
	negative := money.MustParse("-10.00")
	req.TotalPrice = &negative

	_, err := svc.Create(context.Background(), req)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidPrice {
		t.Fatalf("got %v, want INVALID_PRICE", err)
	}
	if created {
		t.Error("nothing should be persisted for a negative-price booking")
	}
}

func TestCreateSurvivesEnqueueFailure(t *testing.T) {
	listings := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return testListing(), nil
		},
	}
	dispatcher := &mockDispatcher{err: context.DeadlineExceeded}
	svc := newTestService(&mockBookingRepository{}, listings, dispatcher)

	booking, err := svc.Create(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("enqueue failure must not fail the booking: %v", err)
	}
	if booking == nil || booking.ID == "" {
		t.Error("booking should be persisted despite enqueue failure")
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		current  model.BookingStatus
		target   model.BookingStatus
		wantCode string
	}{
		{name: "pending to confirmed", current: model.StatusPending, target: model.StatusConfirmed},
		{name: "pending to cancelled", current: model.StatusPending, target: model.StatusCancelled},
		{name: "confirmed to completed", current: model.StatusConfirmed, target: model.StatusCompleted},
		{name: "confirmed to pending", current: model.StatusConfirmed, target: model.StatusPending, wantCode: apperrors.CodeIllegalTransition},
		{name: "cancelled to confirmed", current: model.StatusCancelled, target: model.StatusConfirmed, wantCode: apperrors.CodeIllegalTransition},
		{name: "completed to cancelled", current: model.StatusCompleted, target: model.StatusCancelled, wantCode: apperrors.CodeIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{
						ID:     id,
						Status: tt.current,
					}, nil
				},
			}
			svc := newTestService(repo, &mockListingRepository{}, &mockDispatcher{})

			err := svc.UpdateStatus(context.Background(), "66f000000000000000000099", tt.target)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Fatalf("got %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestUpdateStatusConfirmEnqueuesNotification(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.StatusPending}, nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := newTestService(repo, &mockListingRepository{}, dispatcher)

	if err := svc.UpdateStatus(context.Background(), "66f000000000000000000099", model.StatusConfirmed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dispatcher.enqueued) != 1 {
		t.Fatalf("expected 1 enqueued notification, got %d", len(dispatcher.enqueued))
	}
	if dispatcher.enqueued[0].EventType != notifications.EventBookingConfirmed {
		t.Errorf("event type = %s, want %s", dispatcher.enqueued[0].EventType, notifications.EventBookingConfirmed)
	}
}

func TestUpdateRejectsIllegalStatus(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:           id,
				Status:       model.StatusCompleted,
				CheckInDate:  time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
				CheckOutDate: time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	svc := newTestService(repo, &mockListingRepository{}, &mockDispatcher{})

	err := svc.Update(context.Background(), "66f000000000000000000099", &model.BookingUpdate{
		Status: model.StatusConfirmed,
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeIllegalTransition {
		t.Fatalf("got %v, want ILLEGAL_TRANSITION", err)
	}
}

func TestUpdateRejectsInvertedDates(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:           id,
				Status:       model.StatusPending,
				CheckInDate:  time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
				CheckOutDate: time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	svc := newTestService(repo, &mockListingRepository{}, &mockDispatcher{})

	badCheckOut := time.Date(2026, time.May, 30, 0, 0, 0, 0, time.UTC)
	err := svc.Update(context.Background(), "66f000000000000000000099", &model.BookingUpdate{
		CheckOutDate: &badCheckOut,
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidDateRange {
		t.Fatalf("got %v, want INVALID_DATE_RANGE", err)
	}
}

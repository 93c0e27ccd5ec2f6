package service

import (
	"context"
	"errors"
	"testing"
	"time"

	listingserrors "staybook/internal/listings/errors"
	"staybook/internal/listings/validator"
	"staybook/pkg/config"
	mongotx "staybook/pkg/db/mongo"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/money"
)

type mockListingRepository struct {
	createFunc   func(ctx context.Context, l *model.Listing) error
	findByIDFunc func(ctx context.Context, id string) (*model.Listing, error)
	findFunc     func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error)
	countFunc    func(ctx context.Context, filter model.ListingFilter) (int64, error)
	updateFunc   func(ctx context.Context, id string, updates *model.ListingUpdate) error
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockListingRepository) Create(ctx context.Context, l *model.Listing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, l)
	}
	l.ID = "66f000000000000000000001"
	return nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, listingserrors.ErrNotFound
}

func (m *mockListingRepository) Find(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, limit, offset)
	}
	return []*model.Listing{}, nil
}

func (m *mockListingRepository) Count(ctx context.Context, filter model.ListingFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockListingRepository) Update(ctx context.Context, id string, updates *model.ListingUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil
}

func (m *mockListingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockBookingCounter struct {
	count int64
	err   error
}

func (m *mockBookingCounter) CountForListing(ctx context.Context, listingID string) (int64, error) {
	return m.count, m.err
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.INFO,
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockListingRepository, bookings *mockBookingCounter) ListingService {
	cfg := testConfig()
	return NewListingService(repo, bookings, validator.NewListingValidator(), cfg)
}

func validListing() *model.Listing {
	return &model.Listing{
		Title:         "Cozy Studio Downtown",
		Description:   "A bright studio near the old town.",
		Address:       "12 Rue des Lilas",
		City:          "paris",
		Country:       "france",
		PropertyType:  "apartment",
		PricePerNight: money.MustParse("90.00"),
		MaxGuests:     2,
		HostID:        "host-001",
	}
}

func TestCreateDefaultsToActive(t *testing.T) {
	repo := &mockListingRepository{}
	svc := newTestService(repo, &mockBookingCounter{})

	l := validListing()
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.IsActive == nil || !*l.IsActive {
		t.Error("new listing should default to active")
	}
}

func TestCreateKeepsExplicitInactive(t *testing.T) {
	repo := &mockListingRepository{}
	svc := newTestService(repo, &mockBookingCounter{})

	l := validListing()
	inactive := false
	l.IsActive = &inactive
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *l.IsActive {
		t.Error("explicit is_active=false must not be overridden")
	}
}

func TestCreateNormalizesLocation(t *testing.T) {
	repo := &mockListingRepository{}
	svc := newTestService(repo, &mockBookingCounter{})

	l := validListing()
	l.City = "  Paris "
	l.Country = " France"
	l.Title = "Cozy   Studio\tDowntown"
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.City != "Paris" {
		t.Errorf("city = %q, want Paris", l.City)
	}
	if l.Country != "France" {
		t.Errorf("country = %q, want France", l.Country)
	}
	if l.Title != "Cozy Studio Downtown" {
		t.Errorf("title = %q, want collapsed whitespace", l.Title)
	}
}

func TestCreateRejectsInvalidListing(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(l *model.Listing)
	}{
		{name: "missing title", mangle: func(l *model.Listing) { l.Title = "" }},
		{name: "unknown property type", mangle: func(l *model.Listing) { l.PropertyType = "castle" }},
		{name: "zero guests", mangle: func(l *model.Listing) { l.MaxGuests = 0 }},
		{name: "missing host", mangle: func(l *model.Listing) { l.HostID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockListingRepository{
				createFunc: func(ctx context.Context, l *model.Listing) error {
					created = true
					return nil
				},
			}
			svc := newTestService(repo, &mockBookingCounter{})

			l := validListing()
			tt.mangle(l)

			err := svc.Create(context.Background(), l)
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != apperrors.CodeValidation {
				t.Fatalf("got %v, want VALIDATION_ERROR", err)
			}
			if created {
				t.Error("invalid listing must not reach the repository")
			}
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return nil, listingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockBookingCounter{})

	_, err := svc.GetByID(context.Background(), "66f000000000000000000001")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}

func TestListNormalizesPagination(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	repo := &mockListingRepository{
		findFunc: func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
			gotLimit = limit
			gotOffset = offset
			return []*model.Listing{}, nil
		},
	}
	svc := newTestService(repo, &mockBookingCounter{})

	if _, _, err := svc.List(context.Background(), model.ListingFilter{}, -5, -10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit <= 0 {
		t.Errorf("limit = %d, want a positive default", gotLimit)
	}
	if gotOffset != 0 {
		t.Errorf("offset = %d, want 0", gotOffset)
	}
}

func TestListSurfacesRepositoryError(t *testing.T) {
	repo := &mockListingRepository{
		countFunc: func(ctx context.Context, filter model.ListingFilter) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	svc := newTestService(repo, &mockBookingCounter{})

	_, _, err := svc.List(context.Background(), model.ListingFilter{}, 10, 0)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInternal {
		t.Fatalf("got %v, want INTERNAL_ERROR", err)
	}
}

func TestDeleteRefusedWhileBooked(t *testing.T) {
	deleted := false
	repo := &mockListingRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo, &mockBookingCounter{count: 3})

	err := svc.Delete(context.Background(), "66f000000000000000000001")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("got %v, want CONFLICT", err)
	}
	if deleted {
		t.Error("listing with bookings must not be deleted")
	}
}

func TestDeleteAllowedWithoutBookings(t *testing.T) {
	repo := &mockListingRepository{}
	svc := newTestService(repo, &mockBookingCounter{count: 0})

	if err := svc.Delete(context.Background(), "66f000000000000000000001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateRejectsNegativePrice(t *testing.T) {
	repo := &mockListingRepository{}
	svc := newTestService(repo, &mockBookingCounter{})

	negative := money.Amount(-100)
	err := svc.Update(context.Background(), "66f000000000000000000001", &model.ListingUpdate{
		PricePerNight: &negative,
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("got %v, want VALIDATION_ERROR", err)
	}
}

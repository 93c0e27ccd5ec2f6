package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/validator"
	listingserrors "staybook/internal/listings/errors"
	listingsrepo "staybook/internal/listings/repository"
	"staybook/internal/notifications"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/money"
	"staybook/pkg/pricing"
	"staybook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo       repository.BookingRepository
	listings   listingsrepo.ListingRepository
	validator  *validator.BookingValidator
	dispatcher notifications.Dispatcher
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	listings listingsrepo.ListingRepository,
	validator *validator.BookingValidator,
	dispatcher notifications.Dispatcher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		listings:   listings,
		validator:  validator,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Create runs the booking admission sequence: the listing must exist and
// be active, the stay must span at least one night, the party must fit
// the listing, and the price is taken from the request or computed from
// the nightly rate. Validation failures leave nothing persisted.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitizeRequest(req)

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"listing_id", req.ListingID,
			"guest_id", req.GuestID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	listing, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", req.ListingID)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		s.cfg.Log.Error("Failed to load listing for booking",
			"listing_id", req.ListingID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load listing", err)
	}

	if !listing.Active() {
		return nil, apperrors.ListingInactive(listing.ID)
	}

	if pricing.Nights(req.CheckInDate, req.CheckOutDate) <= 0 {
		return nil, apperrors.InvalidDateRange("check_out_date must be at least one night after check_in_date")
	}

	if req.NumberOfGuests < 1 || req.NumberOfGuests > listing.MaxGuests {
		return nil, apperrors.CapacityExceeded(req.NumberOfGuests, listing.MaxGuests)
	}

	if req.TotalPrice != nil && req.TotalPrice.IsNegative() {
		return nil, apperrors.InvalidPrice("total_price cannot be negative")
	}

	totalPrice, err := s.resolvePrice(req, listing)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}

	booking := &model.Booking{
		ListingID:       req.ListingID,
		GuestID:         req.GuestID,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		NumberOfGuests:  req.NumberOfGuests,
		TotalPrice:      totalPrice,
		Status:          status,
		SpecialRequests: req.SpecialRequests,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"listing_id", req.ListingID,
			"guest_id", req.GuestID,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"listing_id", booking.ListingID,
		"guest_id", booking.GuestID,
		"status", booking.Status,
		"total_price", booking.TotalPrice.String(),
	)

	s.enqueueConfirmation(ctx, booking.ID, notifications.EventBookingCreated)

	return booking, nil
}

// resolvePrice settles the total: a caller-supplied price wins, otherwise
// it is nightly rate times nights.
func (s *bookingService) resolvePrice(req *model.BookingRequest, listing *model.Listing) (money.Amount, error) {
	if req.TotalPrice != nil {
		return *req.TotalPrice, nil
	}

	quote, err := pricing.Quote(listing.PricePerNight, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidRange) {
			return 0, apperrors.InvalidDateRange("check_out_date must be at least one night after check_in_date")
		}
		return 0, apperrors.Internal("Failed to compute booking price", err)
	}
	return quote, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to get booking by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Find(ctx, filter, limit, offset)
	}()
	wg.Wait()

	if errCount != nil {
		s.cfg.Log.Error("Failed to count bookings", "error", errCount)
		return nil, 0, apperrors.Internal("Failed to count bookings", errCount)
	}
	if errFind != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", errFind)
		return nil, 0, apperrors.Internal("Failed to list bookings", errFind)
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if updates.SpecialRequests != nil {
		*updates.SpecialRequests = sanitizer.NormalizeFreeText(*updates.SpecialRequests)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Booking update validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkDates(booking, updates); err != nil {
		return err
	}

	if updates.Status != "" && updates.Status != booking.Status {
		if !booking.Status.CanTransitionTo(updates.Status) {
			return apperrors.IllegalTransition(booking.Status.String(), updates.Status.String())
		}
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)

	if updates.Status == model.StatusConfirmed && booking.Status != model.StatusConfirmed {
		s.enqueueConfirmation(ctx, id, notifications.EventBookingConfirmed)
	}

	return nil
}

// checkDates validates a partial date update against the dates already on
// record, so an update cannot invert the stay.
func (s *bookingService) checkDates(booking *model.Booking, updates *model.BookingUpdate) error {
	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	if updates.CheckInDate != nil {
		checkIn = *updates.CheckInDate
	}
	if updates.CheckOutDate != nil {
		checkOut = *updates.CheckOutDate
	}

	if updates.CheckInDate == nil && updates.CheckOutDate == nil {
		return nil
	}

	if pricing.Nights(checkIn, checkOut) <= 0 {
		return apperrors.InvalidDateRange("check_out_date must be at least one night after check_in_date")
	}
	return nil
}

// UpdateStatus moves a booking through its lifecycle, enforcing the
// transition rules.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !status.IsValid() {
		return apperrors.InvalidInput("Invalid booking status: " + status.String())
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if status == booking.Status {
		return nil
	}

	if !booking.Status.CanTransitionTo(status) {
		return apperrors.IllegalTransition(booking.Status.String(), status.String())
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking status",
			"id", id,
			"status", status,
			"error", err,
		)
		return apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"from", booking.Status,
		"to", status,
	)

	if status == model.StatusConfirmed {
		s.enqueueConfirmation(ctx, id, notifications.EventBookingConfirmed)
	}

	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// enqueueConfirmation is fire-and-forget: a broker outage must not roll
// back a booking that is already persisted.
func (s *bookingService) enqueueConfirmation(ctx context.Context, bookingID, eventType string) {
	if s.dispatcher == nil {
		return
	}

	job := notifications.BookingConfirmationJob{
		BookingID:  bookingID,
		EventType:  eventType,
		EnqueuedAt: time.Now().UTC(),
	}
	jobID, err := s.dispatcher.EnqueueBookingConfirmation(ctx, job)
	if err != nil {
		s.cfg.Log.Warn("Failed to enqueue booking confirmation",
			"booking_id", bookingID,
			"event_type", eventType,
			"error", err,
		)
		return
	}

	s.cfg.Log.Debug("Booking confirmation enqueued",
		"booking_id", bookingID,
		"event_type", eventType,
		"job_id", jobID,
	)
}

func (s *bookingService) sanitizeRequest(req *model.BookingRequest) {
	req.ListingID = sanitizer.TrimAndNormalize(req.ListingID)
	req.GuestID = sanitizer.TrimAndNormalize(req.GuestID)
	req.SpecialRequests = sanitizer.NormalizeFreeText(req.SpecialRequests)
}

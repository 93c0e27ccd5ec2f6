package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	listingserrors "staybook/internal/listings/errors"
	"staybook/internal/listings/repository"
	"staybook/internal/listings/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
)

// BookingCounter reports how many bookings reference a listing. Deleting
// a listing with booking history is refused to keep those records intact.
type BookingCounter interface {
	CountForListing(ctx context.Context, listingID string) (int64, error)
}

type ListingService interface {
	Create(ctx context.Context, l *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	List(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error)
	Update(ctx context.Context, id string, updates *model.ListingUpdate) error
	Delete(ctx context.Context, id string) error
}

type listingService struct {
	repo      repository.ListingRepository
	bookings  BookingCounter
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewListingService(
	repo repository.ListingRepository,
	bookings BookingCounter,
	validator *validator.ListingValidator,
	cfg *config.Config,
) ListingService {
	return &listingService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *listingService) Create(ctx context.Context, l *model.Listing) error {
	s.sanitize(l)
	s.applyDefaults(l)

	if err := s.validator.Validate(l); err != nil {
		s.cfg.Log.Warn("Listing validation failed",
			"title", l.Title,
			"host_id", l.HostID,
			"error", err,
		)
		return apperrors.Validation("Listing validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.cfg.Log.Error("Failed to create listing",
			"title", l.Title,
			"host_id", l.HostID,
			"error", err,
		)
		return apperrors.Internal("Failed to create listing", err)
	}

	s.cfg.Log.Info("Listing created successfully",
		"id", l.ID,
		"title", l.Title,
		"city", l.City,
		"property_type", l.PropertyType,
	)

	return nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", id)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		s.cfg.Log.Error("Failed to get listing by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve listing", err)
	}

	return l, nil
}

func (s *listingService) List(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter = filter.Normalize()

	var count int64
	var listings []*model.Listing
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		listings, errFind = s.repo.Find(ctx, filter, limit, offset)
	}()
	wg.Wait()

	if errCount != nil {
		s.cfg.Log.Error("Failed to count listings", "error", errCount)
		return nil, 0, apperrors.Internal("Failed to count listings", errCount)
	}
	if errFind != nil {
		s.cfg.Log.Error("Failed to list listings", "error", errFind)
		return nil, 0, apperrors.Internal("Failed to list listings", errFind)
	}

	return listings, count, nil
}

func (s *listingService) Update(ctx context.Context, id string, updates *model.ListingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Listing ID cannot be empty")
	}

	s.sanitizeUpdate(updates)

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Listing update validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Listing", id)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid listing ID format")
		}
		s.cfg.Log.Error("Failed to update listing",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update listing", err)
	}

	s.cfg.Log.Info("Listing updated successfully", "id", id)
	return nil
}

func (s *listingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Listing ID cannot be empty")
	}

	bookingCount, err := s.bookings.CountForListing(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings for listing",
			"listing_id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to check listing bookings", err)
	}
	if bookingCount > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"Listing has %d booking(s) and cannot be deleted", bookingCount,
		))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Listing", id)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid listing ID format")
		}
		s.cfg.Log.Error("Failed to delete listing",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete listing", err)
	}

	s.cfg.Log.Info("Listing deleted successfully", "id", id)
	return nil
}

func (s *listingService) sanitize(l *model.Listing) {
	l.Title = sanitizer.NormalizeTitle(l.Title)
	l.Description = sanitizer.NormalizeFreeText(l.Description)
	l.Address = sanitizer.TrimAndNormalize(l.Address)
	l.City = sanitizer.NormalizeCity(l.City)
	l.State = sanitizer.TrimAndNormalize(l.State)
	l.Country = sanitizer.NormalizeCountry(l.Country)
	l.ZipCode = sanitizer.TrimAndNormalize(l.ZipCode)
	l.PropertyType = sanitizer.TrimAndNormalize(l.PropertyType)
	l.Amenities = sanitizer.NormalizeFreeText(l.Amenities)
	l.HostID = sanitizer.TrimAndNormalize(l.HostID)
}

func (s *listingService) sanitizeUpdate(updates *model.ListingUpdate) {
	if updates.Title != nil {
		*updates.Title = sanitizer.NormalizeTitle(*updates.Title)
	}
	if updates.Description != nil {
		*updates.Description = sanitizer.NormalizeFreeText(*updates.Description)
	}
	if updates.Address != nil {
		*updates.Address = sanitizer.TrimAndNormalize(*updates.Address)
	}
	if updates.City != nil {
		*updates.City = sanitizer.NormalizeCity(*updates.City)
	}
	if updates.State != nil {
		*updates.State = sanitizer.TrimAndNormalize(*updates.State)
	}
	if updates.Country != nil {
		*updates.Country = sanitizer.NormalizeCountry(*updates.Country)
	}
	if updates.ZipCode != nil {
		*updates.ZipCode = sanitizer.TrimAndNormalize(*updates.ZipCode)
	}
	if updates.PropertyType != nil {
		*updates.PropertyType = sanitizer.TrimAndNormalize(*updates.PropertyType)
	}
	if updates.Amenities != nil {
		*updates.Amenities = sanitizer.NormalizeFreeText(*updates.Amenities)
	}
}

// New listings are bookable unless the caller says otherwise.
func (s *listingService) applyDefaults(l *model.Listing) {
	if l.IsActive == nil {
		active := true
		l.IsActive = &active
	}
}

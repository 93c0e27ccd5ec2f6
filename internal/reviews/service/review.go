package service

import (
	"context"
	"errors"

	listingserrors "staybook/internal/listings/errors"
	listingsrepo "staybook/internal/listings/repository"
	reviewserrors "staybook/internal/reviews/errors"
	"staybook/internal/reviews/repository"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ReviewService interface {
	Create(ctx context.Context, review *model.Review) error
	ListForListing(ctx context.Context, listingID string, limit int, offset int64) ([]*model.Review, int64, error)
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	repo     repository.ReviewRepository
	listings listingsrepo.ListingRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	listings listingsrepo.ListingRepository,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:     repo,
		listings: listings,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Create stores a review after checking the listing exists and the
// reviewer has not already reviewed it. One review per guest per listing.
func (s *reviewService) Create(ctx context.Context, review *model.Review) error {
	review.ReviewerID = sanitizer.TrimAndNormalize(review.ReviewerID)
	review.Comment = sanitizer.NormalizeFreeText(review.Comment)

	if err := s.validate.Struct(review); err != nil {
		s.cfg.Log.Warn("Review validation failed",
			"listing_id", review.ListingID,
			"reviewer_id", review.ReviewerID,
			"error", err,
		)
		return apperrors.Validation("Review validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.listings.FindByID(ctx, review.ListingID); err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Listing", review.ListingID)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid listing ID format")
		}
		return apperrors.Internal("Failed to load listing", err)
	}

	exists, err := s.repo.ExistsForReviewer(ctx, review.ListingID, review.ReviewerID)
	if err != nil {
		s.cfg.Log.Error("Failed to check for existing review",
			"listing_id", review.ListingID,
			"reviewer_id", review.ReviewerID,
			"error", err,
		)
		return apperrors.Internal("Failed to check for existing review", err)
	}
	if exists {
		return apperrors.Conflict("Reviewer has already reviewed this listing")
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, reviewserrors.ErrDuplicate) {
			return apperrors.Conflict("Reviewer has already reviewed this listing")
		}
		s.cfg.Log.Error("Failed to create review",
			"listing_id", review.ListingID,
			"reviewer_id", review.ReviewerID,
			"error", err,
		)
		return apperrors.Internal("Failed to create review", err)
	}

	s.cfg.Log.Info("Review created successfully",
		"id", review.ID,
		"listing_id", review.ListingID,
		"rating", review.Rating,
	)

	return nil
}

func (s *reviewService) ListForListing(ctx context.Context, listingID string, limit int, offset int64) ([]*model.Review, int64, error) {
	if listingID == "" {
		return nil, 0, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	reviews, err := s.repo.FindByListing(ctx, listingID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "listing_id", listingID, "error", err)
		return nil, 0, apperrors.Internal("Failed to list reviews", err)
	}

	count, err := s.repo.CountByListing(ctx, listingID)
	if err != nil {
		s.cfg.Log.Error("Failed to count reviews", "listing_id", listingID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count reviews", err)
	}

	return reviews, count, nil
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Review ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Review", id)
		}
		if errors.Is(err, reviewserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid review ID format")
		}
		s.cfg.Log.Error("Failed to delete review", "id", id, "error", err)
		return apperrors.Internal("Failed to delete review", err)
	}

	s.cfg.Log.Info("Review deleted successfully", "id", id)
	return nil
}

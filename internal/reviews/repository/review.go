package repository

import (
	"context"
	"fmt"
	"time"

	reviewserrors "staybook/internal/reviews/errors"
	"staybook/pkg/config"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "reviews"
)

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByListing(ctx context.Context, listingID string, limit int, offset int64) ([]*model.Review, error)
	CountByListing(ctx context.Context, listingID string) (int64, error)
	ExistsForReviewer(ctx context.Context, listingID, reviewerID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

func NewMongoReviewRepository(cfg *config.Config) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoReviewRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *model.Review) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: listing %s, reviewer %s", reviewserrors.ErrDuplicate, review.ListingID, review.ReviewerID)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}

	return nil
}

func (r *mongoReviewRepository) FindByListing(ctx context.Context, listingID string, limit int, offset int64) ([]*model.Review, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*model.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

func (r *mongoReviewRepository) CountByListing(ctx context.Context, listingID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

func (r *mongoReviewRepository) ExistsForReviewer(ctx context.Context, listingID, reviewerID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"listing_id":  listingID,
		"reviewer_id": reviewerID,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check for existing review: %w", err)
	}
	return count > 0, nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reviewserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
	}

	return nil
}

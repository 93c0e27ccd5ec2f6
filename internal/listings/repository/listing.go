package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	listingserrors "staybook/internal/listings/errors"
	"staybook/pkg/config"
	mongotx "staybook/pkg/db/mongo"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "listings"
)

type mongoListingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ListingRepository interface {
	Create(ctx context.Context, l *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	Find(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error)
	Count(ctx context.Context, filter model.ListingFilter) (int64, error)
	Update(ctx context.Context, id string, updates *model.ListingUpdate) error
	Delete(ctx context.Context, id string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoListingRepository(cfg *config.Config) ListingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoListingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.WriteTimeout),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction: a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoListingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoListingRepository) Create(ctx context.Context, l *model.Listing) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	l.CreatedAt = now
	l.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, l)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid.Hex()
	}

	return nil
}

func (r *mongoListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}

	var l model.Listing
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &l, nil
}

func (r *mongoListingRepository) Find(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, buildListingFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []*model.Listing
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}

	return listings, nil
}

func (r *mongoListingRepository) Count(ctx context.Context, filter model.ListingFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListingFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// buildListingFilter translates the filter into a Mongo query. Every
// criterion is combined conjunctively, matching ListingFilter.Matches.
func buildListingFilter(f model.ListingFilter) bson.M {
	query := bson.M{}

	if f.City != "" {
		query["city"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.City), Options: "i"}
	}
	if f.Country != "" {
		query["country"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Country), Options: "i"}
	}
	if f.PropertyType != "" {
		query["property_type"] = f.PropertyType
	}
	if f.MaxPrice != nil {
		query["price_per_night"] = bson.M{"$lte": *f.MaxPrice}
	}
	if f.IsActive != nil {
		query["is_active"] = *f.IsActive
	}

	return query
}

func (r *mongoListingRepository) Update(ctx context.Context, id string, updates *model.ListingUpdate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if updates.Title != nil {
		set["title"] = *updates.Title
	}
	if updates.Description != nil {
		set["description"] = *updates.Description
	}
	if updates.Address != nil {
		set["address"] = *updates.Address
	}
	if updates.City != nil {
		set["city"] = *updates.City
	}
	if updates.State != nil {
		set["state"] = *updates.State
	}
	if updates.Country != nil {
		set["country"] = *updates.Country
	}
	if updates.ZipCode != nil {
		set["zip_code"] = *updates.ZipCode
	}
	if updates.PropertyType != nil {
		set["property_type"] = *updates.PropertyType
	}
	if updates.PricePerNight != nil {
		set["price_per_night"] = *updates.PricePerNight
	}
	if updates.MaxGuests != nil {
		set["max_guests"] = *updates.MaxGuests
	}
	if updates.Bedrooms != nil {
		set["bedrooms"] = *updates.Bedrooms
	}
	if updates.Bathrooms != nil {
		set["bathrooms"] = *updates.Bathrooms
	}
	if updates.Amenities != nil {
		set["amenities"] = *updates.Amenities
	}
	if updates.IsActive != nil {
		set["is_active"] = *updates.IsActive
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoListingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

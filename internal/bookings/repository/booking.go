package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/pkg/config"
	mongotx "staybook/pkg/db/mongo"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "bookings"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	Find(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter model.BookingFilter) (int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	Delete(ctx context.Context, id string) error
	CountForListing(ctx context.Context, listingID string) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.WriteTimeout),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	b.CreatedAt = now
	b.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}

	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var b model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &b, nil
}

func (r *mongoBookingRepository) Find(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "check_in_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, buildBookingFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildBookingFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// buildBookingFilter translates the filter into a Mongo query, combined
// conjunctively like BookingFilter.Matches.
func buildBookingFilter(f model.BookingFilter) bson.M {
	query := bson.M{}

	if f.GuestID != "" {
		query["guest_id"] = f.GuestID
	}
	if f.ListingID != "" {
		query["listing_id"] = f.ListingID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.CheckInAfter != nil {
		query["check_in_date"] = bson.M{"$gte": *f.CheckInAfter}
	}
	if f.CheckOutBefore != nil {
		query["check_out_date"] = bson.M{"$lte": *f.CheckOutBefore}
	}

	return query
}

func (r *mongoBookingRepository) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if updates.CheckInDate != nil {
		set["check_in_date"] = *updates.CheckInDate
	}
	if updates.CheckOutDate != nil {
		set["check_out_date"] = *updates.CheckOutDate
	}
	if updates.NumberOfGuests != nil {
		set["number_of_guests"] = *updates.NumberOfGuests
	}
	if updates.Status != "" {
		set["status"] = updates.Status
	}
	if updates.SpecialRequests != nil {
		set["special_requests"] = *updates.SpecialRequests
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBookingRepository) CountForListing(ctx context.Context, listingID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for listing [%s]: %w", listingID, err)
	}
	return count, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

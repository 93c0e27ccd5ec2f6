package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingsrepo "staybook/internal/bookings/repository"
	listingsrepo "staybook/internal/listings/repository"
	"staybook/internal/migrations/mongo/validators"
	paymentsrepo "staybook/internal/payments/repository"
	reviewsrepo "staybook/internal/reviews/repository"
	"staybook/pkg/logger"
)

var (
	ListingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "city", Value: 1},
			{Key: "property_type", Value: 1},
			{Key: "price_per_night", Value: 1},
		}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "listing_id", Value: 1},
			{Key: "check_in_date", Value: 1},
			{Key: "check_out_date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "guest_id", Value: 1},
			{Key: "check_in_date", Value: 1},
		}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	// The unique index is what actually holds the one-review-per-reviewer
	// rule; the repository's pre-insert existence check alone cannot, under
	// concurrent creates.
	ReviewsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "listing_id", Value: 1},
				{Key: "reviewer_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_listing_reviewer"),
		},
		{Keys: bson.D{
			{Key: "listing_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	PaymentsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payment_reference", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_payment_reference"),
		},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}
)

// RunMigration ensures every collection exists with its JSON-schema
// validator and indexes. It is idempotent and safe to run on every deploy.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running MongoDB migrations", "database", db.Name())

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		listingsrepo.CollectionName: {
			Indexes:   ListingsIndexes,
			Validator: validators.ListingValidator,
		},
		bookingsrepo.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		reviewsrepo.CollectionName: {
			Indexes:   ReviewsIndexes,
			Validator: validators.ReviewValidator,
		},
		paymentsrepo.CollectionName: {
			Indexes:   PaymentsIndexes,
			Validator: validators.PaymentValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed to update collection validator",
			"collection", name,
			"error", err,
		)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

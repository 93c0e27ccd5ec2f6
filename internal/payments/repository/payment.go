package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	paymentserrors "staybook/internal/payments/errors"
	"staybook/pkg/config"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "payments"
)

type mongoPaymentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByReference(ctx context.Context, reference string) (*model.Payment, error)
	FindByBooking(ctx context.Context, bookingID string) ([]*model.Payment, error)
	MarkCompleted(ctx context.Context, reference, transactionID string, gatewayResponse map[string]any) error
	MarkFailed(ctx context.Context, reference string, gatewayResponse map[string]any) error
}

func NewMongoPaymentRepository(cfg *config.Config) PaymentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPaymentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPaymentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	p.CreatedAt = now
	p.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}

	return nil
}

func (r *mongoPaymentRepository) FindByReference(ctx context.Context, reference string) (*model.Payment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var p model.Payment
	err := r.collection.FindOne(ctx, bson.M{"payment_reference": reference}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", paymentserrors.ErrNotFound, reference)
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &p, nil
}

func (r *mongoPaymentRepository) FindByBooking(ctx context.Context, bookingID string) ([]*model.Payment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []*model.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	return payments, nil
}

func (r *mongoPaymentRepository) MarkCompleted(ctx context.Context, reference, transactionID string, gatewayResponse map[string]any) error {
	return r.setStatus(ctx, reference, model.PaymentCompleted, transactionID, gatewayResponse)
}

func (r *mongoPaymentRepository) MarkFailed(ctx context.Context, reference string, gatewayResponse map[string]any) error {
	return r.setStatus(ctx, reference, model.PaymentFailed, "", gatewayResponse)
}

func (r *mongoPaymentRepository) setStatus(ctx context.Context, reference string, status model.PaymentStatus, transactionID string, gatewayResponse map[string]any) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	if transactionID != "" {
		set["transaction_id"] = transactionID
	}
	if gatewayResponse != nil {
		set["gateway_response"] = gatewayResponse
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"payment_reference": reference}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", paymentserrors.ErrNotFound, reference)
	}

	return nil
}

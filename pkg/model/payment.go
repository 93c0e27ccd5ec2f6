package model

import (
	"time"

	"staybook/pkg/money"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID               string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID        string         `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	TransactionID    string         `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	Amount           money.Amount   `json:"amount" bson:"amount" validate:"min=0"`
	Status           PaymentStatus  `json:"status" bson:"status" validate:"required,oneof=pending completed failed"`
	PaymentReference string         `json:"payment_reference" bson:"payment_reference"`
	GatewayResponse  map[string]any `json:"gateway_response,omitempty" bson:"gateway_response,omitempty"`
	CreatedAt        time.Time      `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
	UpdatedAt        time.Time      `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

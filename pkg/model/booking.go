package model

import (
	"time"

	"staybook/pkg/money"
)

type Booking struct {
	ID              string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ListingID       string        `json:"listing_id" bson:"listing_id" validate:"required,mongodb"`
	GuestID         string        `json:"guest_id" bson:"guest_id" validate:"required"`
	CheckInDate     time.Time     `json:"check_in_date" bson:"check_in_date" validate:"required"`
	CheckOutDate    time.Time     `json:"check_out_date" bson:"check_out_date" validate:"required"`
	NumberOfGuests  int           `json:"number_of_guests" bson:"number_of_guests" validate:"required,min=1"`
	TotalPrice      money.Amount  `json:"total_price" bson:"total_price" validate:"min=0"`
	Status          BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	SpecialRequests string        `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time     `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

// BookingRequest is the validated input for booking creation. TotalPrice
// and Status are optional: an omitted price is computed from the listing's
// nightly rate, an omitted status defaults to pending. Guest count and
// price bounds are checked by the service against the listing.
type BookingRequest struct {
	ListingID       string        `json:"listing_id" validate:"required,mongodb"`
	GuestID         string        `json:"guest_id" validate:"required"`
	CheckInDate     time.Time     `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time     `json:"check_out_date" validate:"required"`
	NumberOfGuests  int           `json:"number_of_guests"`
	TotalPrice      *money.Amount `json:"total_price,omitempty"`
	Status          BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	SpecialRequests string        `json:"special_requests,omitempty"`
}

type BookingUpdate struct {
	CheckInDate     *time.Time    `json:"check_in_date,omitempty"`
	CheckOutDate    *time.Time    `json:"check_out_date,omitempty"`
	NumberOfGuests  *int          `json:"number_of_guests,omitempty" validate:"omitempty,min=1"`
	Status          BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	SpecialRequests *string       `json:"special_requests,omitempty"`
}

package model

import (
	"time"

	"staybook/pkg/money"
)

// PropertyTypes are the accepted values for Listing.PropertyType.
var PropertyTypes = []string{"apartment", "house", "villa", "condo", "cabin", "hotel", "resort"}

type Listing struct {
	ID            string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title         string       `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description   string       `json:"description" bson:"description" validate:"required"`
	Address       string       `json:"address" bson:"address" validate:"required,max=255"`
	City          string       `json:"city" bson:"city" validate:"required,max=100"`
	State         string       `json:"state,omitempty" bson:"state,omitempty" validate:"omitempty,max=100"`
	Country       string       `json:"country" bson:"country" validate:"required,max=100"`
	ZipCode       string       `json:"zip_code,omitempty" bson:"zip_code,omitempty" validate:"omitempty,max=20"`
	PropertyType  string       `json:"property_type" bson:"property_type" validate:"required,oneof=apartment house villa condo cabin hotel resort"`
	PricePerNight money.Amount `json:"price_per_night" bson:"price_per_night" validate:"min=0"`
	MaxGuests     int          `json:"max_guests" bson:"max_guests" validate:"required,min=1"`
	Bedrooms      int          `json:"bedrooms" bson:"bedrooms" validate:"min=0"`
	Bathrooms     int          `json:"bathrooms" bson:"bathrooms" validate:"min=0"`
	Amenities     string       `json:"amenities,omitempty" bson:"amenities,omitempty"`
	HostID        string       `json:"host_id" bson:"host_id" validate:"required"`
	IsActive      *bool        `json:"is_active,omitempty" bson:"is_active"`
	CreatedAt     time.Time    `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time    `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

// Active reports whether the listing is publicly bookable.
func (l *Listing) Active() bool {
	return l.IsActive != nil && *l.IsActive
}

type ListingUpdate struct {
	Title         *string       `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string       `json:"description,omitempty"`
	Address       *string       `json:"address,omitempty" validate:"omitempty,max=255"`
	City          *string       `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string       `json:"state,omitempty" validate:"omitempty,max=100"`
	Country       *string       `json:"country,omitempty" validate:"omitempty,max=100"`
	ZipCode       *string       `json:"zip_code,omitempty" validate:"omitempty,max=20"`
	PropertyType  *string       `json:"property_type,omitempty" validate:"omitempty,oneof=apartment house villa condo cabin hotel resort"`
	PricePerNight *money.Amount `json:"price_per_night,omitempty"`
	MaxGuests     *int          `json:"max_guests,omitempty" validate:"omitempty,min=1"`
	Bedrooms      *int          `json:"bedrooms,omitempty" validate:"omitempty,min=0"`
	Bathrooms     *int          `json:"bathrooms,omitempty" validate:"omitempty,min=0"`
	Amenities     *string       `json:"amenities,omitempty"`
	IsActive      *bool         `json:"is_active,omitempty"`
}

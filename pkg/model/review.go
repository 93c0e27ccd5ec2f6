package model

import "time"

type Review struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ListingID  string    `json:"listing_id" bson:"listing_id" validate:"required,mongodb"`
	ReviewerID string    `json:"reviewer_id" bson:"reviewer_id" validate:"required"`
	Rating     int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

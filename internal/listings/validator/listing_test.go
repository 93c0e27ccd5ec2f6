package validator

import (
	"testing"

	"staybook/pkg/model"
	"staybook/pkg/money"
)

func validListing() *model.Listing {
	return &model.Listing{
		Title:         "Seaside Villa",
		Description:   "Sweeping ocean views from every room.",
		Address:       "1 Promenade des Anglais",
		City:          "Nice",
		Country:       "France",
		PropertyType:  "villa",
		PricePerNight: money.MustParse("320.00"),
		MaxGuests:     6,
		HostID:        "host-002",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mangle  func(l *model.Listing)
		wantErr bool
	}{
		{name: "valid", mangle: func(l *model.Listing) {}},
		{name: "title too short", mangle: func(l *model.Listing) { l.Title = "x" }, wantErr: true},
		{name: "missing description", mangle: func(l *model.Listing) { l.Description = "" }, wantErr: true},
		{name: "missing city", mangle: func(l *model.Listing) { l.City = "" }, wantErr: true},
		{name: "unknown property type", mangle: func(l *model.Listing) { l.PropertyType = "treehouse" }, wantErr: true},
		{name: "zero price allowed", mangle: func(l *model.Listing) { l.PricePerNight = 0 }},
		{name: "negative price", mangle: func(l *model.Listing) { l.PricePerNight = -1 }, wantErr: true},
		{name: "zero max guests", mangle: func(l *model.Listing) { l.MaxGuests = 0 }, wantErr: true},
		{name: "malformed id", mangle: func(l *model.Listing) { l.ID = "abc" }, wantErr: true},
	}

	v := NewListingValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mangle(l)
			err := v.Validate(l)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	shortTitle := "x"
	goodTitle := "Renovated Seaside Villa"
	negativePrice := money.Amount(-500)
	badType := "bunker"

	tests := []struct {
		name    string
		update  *model.ListingUpdate
		wantErr bool
	}{
		{name: "empty update", update: &model.ListingUpdate{}},
		{name: "title change", update: &model.ListingUpdate{Title: &goodTitle}},
		{name: "title too short", update: &model.ListingUpdate{Title: &shortTitle}, wantErr: true},
		{name: "negative price", update: &model.ListingUpdate{PricePerNight: &negativePrice}, wantErr: true},
		{name: "unknown property type", update: &model.ListingUpdate{PropertyType: &badType}, wantErr: true},
	}

	v := NewListingValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(tt.update)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

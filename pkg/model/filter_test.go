package model

import (
	"testing"
	"time"

	"staybook/pkg/money"
)

func activeListing(city string, price string) *Listing {
	active := true
	return &Listing{
		Title:         "Listing in " + city,
		City:          city,
		Country:       "France",
		PropertyType:  "apartment",
		PricePerNight: money.MustParse(price),
		MaxGuests:     2,
		IsActive:      &active,
	}
}

func TestListingFilterMatches(t *testing.T) {
	paris := activeListing("Paris", "90.00")
	parisPricey := activeListing("Paris", "250.00")
	nice := activeListing("Nice", "80.00")
	inactive := activeListing("Paris", "50.00")
	*inactive.IsActive = false

	maxPrice := money.MustParse("100.00")
	filter := ListingFilter{City: "paris", MaxPrice: &maxPrice}.Normalize()

	if !filter.Matches(paris) {
		t.Error("expected cheap Paris listing to match")
	}
	if filter.Matches(parisPricey) {
		t.Error("expected expensive Paris listing to be excluded by max_price")
	}
	if filter.Matches(nice) {
		t.Error("expected Nice listing to be excluded by city")
	}
	if filter.Matches(inactive) {
		t.Error("expected inactive listing to be excluded by default")
	}
}

func TestListingFilterCaseInsensitiveSubstring(t *testing.T) {
	l := activeListing("Paris", "90.00")

	for _, city := range []string{"paris", "PARIS", "ari"} {
		f := ListingFilter{City: city}.Normalize()
		if !f.Matches(l) {
			t.Errorf("city filter %q should match Paris", city)
		}
	}
}

func TestListingFilterIncludesInactiveWhenAsked(t *testing.T) {
	inactive := activeListing("Paris", "50.00")
	*inactive.IsActive = false

	all := false
	f := ListingFilter{IsActive: &all}.Normalize()
	if !f.Matches(inactive) {
		t.Error("explicit is_active=false should match inactive listings")
	}

	active := activeListing("Paris", "50.00")
	if f.Matches(active) {
		t.Error("explicit is_active=false should exclude active listings")
	}
}

func TestListingFilterNormalizeIdempotent(t *testing.T) {
	f := ListingFilter{City: "Paris"}.Normalize()
	g := f.Normalize()

	if f.IsActive == nil || g.IsActive == nil || *f.IsActive != *g.IsActive {
		t.Error("Normalize must be idempotent")
	}
}

func TestBookingFilterMatches(t *testing.T) {
	checkIn := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)

	booking := &Booking{
		ListingID:    "listing-1",
		GuestID:      "guest-1",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       StatusConfirmed,
	}

	tests := []struct {
		name   string
		filter BookingFilter
		want   bool
	}{
		{"empty filter matches", BookingFilter{}, true},
		{"guest match", BookingFilter{GuestID: "guest-1"}, true},
		{"guest mismatch", BookingFilter{GuestID: "guest-2"}, false},
		{"listing match", BookingFilter{ListingID: "listing-1"}, true},
		{"status match", BookingFilter{Status: StatusConfirmed}, true},
		{"status mismatch", BookingFilter{Status: StatusPending}, false},
		{
			"check_in_after inclusive",
			BookingFilter{CheckInAfter: &checkIn},
			true,
		},
		{
			"check_in_after excludes earlier",
			BookingFilter{CheckInAfter: timePtr(checkIn.Add(24 * time.Hour))},
			false,
		},
		{
			"check_out_before inclusive",
			BookingFilter{CheckOutBefore: &checkOut},
			true,
		},
		{
			"check_out_before excludes later",
			BookingFilter{CheckOutBefore: timePtr(checkOut.Add(-24 * time.Hour))},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(booking); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

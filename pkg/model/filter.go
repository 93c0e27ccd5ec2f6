package model

import (
	"strings"
	"time"

	"staybook/pkg/money"
)

// ListingFilter holds optional listing query criteria. All supplied
// criteria must match; absent criteria impose no constraint. Filters are
// side-effect-free, so applying them in any order yields the same set.
type ListingFilter struct {
	City         string
	Country      string
	PropertyType string
	MaxPrice     *money.Amount
	IsActive     *bool
}

// Normalize applies the default criteria: unless the caller asked
// otherwise, only active listings are returned.
func (f ListingFilter) Normalize() ListingFilter {
	if f.IsActive == nil {
		active := true
		f.IsActive = &active
	}
	return f
}

// Matches reports whether the listing satisfies every supplied criterion.
func (f ListingFilter) Matches(l *Listing) bool {
	if f.City != "" && !containsFold(l.City, f.City) {
		return false
	}
	if f.Country != "" && !containsFold(l.Country, f.Country) {
		return false
	}
	if f.PropertyType != "" && l.PropertyType != f.PropertyType {
		return false
	}
	if f.MaxPrice != nil && l.PricePerNight > *f.MaxPrice {
		return false
	}
	if f.IsActive != nil && l.Active() != *f.IsActive {
		return false
	}
	return true
}

// BookingFilter holds optional booking query criteria, combined
// conjunctively like ListingFilter.
type BookingFilter struct {
	GuestID        string
	ListingID      string
	Status         BookingStatus
	CheckInAfter   *time.Time
	CheckOutBefore *time.Time
}

// Matches reports whether the booking satisfies every supplied criterion.
func (f BookingFilter) Matches(b *Booking) bool {
	if f.GuestID != "" && b.GuestID != f.GuestID {
		return false
	}
	if f.ListingID != "" && b.ListingID != f.ListingID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.CheckInAfter != nil && b.CheckInDate.Before(*f.CheckInAfter) {
		return false
	}
	if f.CheckOutBefore != nil && b.CheckOutDate.After(*f.CheckOutBefore) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

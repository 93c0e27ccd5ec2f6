// Package pricing derives a booking's total price from a listing's
// nightly rate and a date range. Pure functions, no side effects.
package pricing

import (
	"errors"
	"time"

	"staybook/pkg/money"
)

var ErrInvalidRange = errors.New("pricing: check-out must be after check-in")

// Nights returns the whole-day difference between check-in and check-out.
// Both timestamps are truncated to their UTC calendar day first.
func Nights(checkIn, checkOut time.Time) int64 {
	return int64(day(checkOut).Sub(day(checkIn)) / (24 * time.Hour))
}

// Quote computes nightly rate multiplied by the number of nights. Fails
// with ErrInvalidRange when the range covers zero or negative nights.
func Quote(nightly money.Amount, checkIn, checkOut time.Time) (money.Amount, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, ErrInvalidRange
	}
	return nightly.Mul(nights), nil
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

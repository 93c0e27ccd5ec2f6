package pricing

import (
	"errors"
	"testing"
	"time"

	"staybook/pkg/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int64
	}{
		{
			name:     "four nights",
			checkIn:  date(2026, time.June, 1),
			checkOut: date(2026, time.June, 5),
			want:     4,
		},
		{
			name:     "single night",
			checkIn:  date(2026, time.June, 1),
			checkOut: date(2026, time.June, 2),
			want:     1,
		},
		{
			name:     "same day",
			checkIn:  date(2026, time.June, 1),
			checkOut: date(2026, time.June, 1),
			want:     0,
		},
		{
			name:     "inverted range",
			checkIn:  date(2026, time.June, 5),
			checkOut: date(2026, time.June, 1),
			want:     -4,
		},
		{
			name:     "time of day ignored",
			checkIn:  time.Date(2026, time.June, 1, 23, 30, 0, 0, time.UTC),
			checkOut: time.Date(2026, time.June, 2, 0, 15, 0, 0, time.UTC),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	nightly := money.MustParse("150.00")

	total, err := Quote(nightly, date(2026, time.June, 1), date(2026, time.June, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.String() != "600.00" {
		t.Errorf("Quote = %s, want 600.00", total)
	}
}

func TestQuoteInvalidRange(t *testing.T) {
	nightly := money.MustParse("150.00")

	_, err := Quote(nightly, date(2026, time.June, 5), date(2026, time.June, 5))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("same-day quote: got %v, want ErrInvalidRange", err)
	}

	_, err = Quote(nightly, date(2026, time.June, 5), date(2026, time.June, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted quote: got %v, want ErrInvalidRange", err)
	}
}

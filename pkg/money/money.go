// Package money represents currency amounts as integer minor units so
// arithmetic stays exact. Amounts render as fixed-point decimal strings
// with two fractional digits.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("money: invalid amount")

// Amount is a currency amount in minor units (e.g. cents).
type Amount int64

func FromMinorUnits(n int64) Amount {
	return Amount(n)
}

func (a Amount) MinorUnits() int64 {
	return int64(a)
}

func (a Amount) IsNegative() bool {
	return a < 0
}

func (a Amount) IsZero() bool {
	return a == 0
}

// Mul multiplies the amount by an integer factor (e.g. number of nights).
func (a Amount) Mul(times int64) Amount {
	return Amount(int64(a) * times)
}

func (a Amount) Add(other Amount) Amount {
	return a + other
}

// String renders the amount as a decimal with two fractional digits.
func (a Amount) String() string {
	n := int64(a)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}

// Parse converts a decimal string into an Amount. Digits beyond the
// second fractional place are rounded half-up.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	negative := false
	if s[0] == '-' || s[0] == '+' {
		negative = s[0] == '-'
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if hasFrac && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	var cents int64
	if hasFrac {
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
			}
		}
		padded := fracPart
		if len(padded) < 2 {
			padded = padded + strings.Repeat("0", 2-len(padded))
		}
		cents, _ = strconv.ParseInt(padded[:2], 10, 64)
		if len(padded) > 2 && padded[2] >= '5' {
			cents++
		}
	}

	total := whole*100 + cents
	if negative {
		total = -total
	}
	return Amount(total), nil
}

// MustParse is Parse that panics on error; for tests and fixtures.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Package money provides currency arithmetic on integer minor units so that
// splitting and summing amounts never drifts the way binary floating point
// does.
package money

import (
	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Round2 rounds to two fractional digits, half away from zero. For the
// positive amounts used throughout this system that is plain half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Cents converts an amount to integer minor units, rounding half-up at the
// second decimal place first.
func Cents(d decimal.Decimal) int64 {
	return Round2(d).Shift(2).IntPart()
}

// FromCents converts integer minor units back to a two-decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// Add sums two amounts at minor-unit precision.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return FromCents(Cents(a) + Cents(b))
}

// Sub subtracts b from a at minor-unit precision.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return FromCents(Cents(a) - Cents(b))
}

// MulInt multiplies an amount by an integer count of periods.
func MulInt(a decimal.Decimal, n int) decimal.Decimal {
	return FromCents(Cents(a) * int64(n))
}

// DivInt divides an amount by an integer count of periods, truncating to the
// minor unit. Use Split when the remainder must be preserved.
func DivInt(a decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, domain.ErrInvalidPeriodCount
	}
	return FromCents(Cents(a) / int64(n)), nil
}

// Split divides a total into n per-period amounts whose sum is exactly the
// total. The minor-unit remainder is folded into the first period.
func Split(total decimal.Decimal, n int) (first, rest decimal.Decimal, err error) {
	if n <= 0 {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidPeriodCount
	}
	cents := Cents(total)
	base := cents / int64(n)
	remainder := cents - base*int64(n)
	return FromCents(base + remainder), FromCents(base), nil
}

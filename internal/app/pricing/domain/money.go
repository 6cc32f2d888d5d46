package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits a stored price may carry.
const PriceScale = 2

// Money represents a monetary value with exact decimal arithmetic.
// It never goes through binary floating point, so comparisons and derived
// percentages are reproducible for the same decimal inputs.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString parses a decimal string such as "1299.99".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// MustMoney parses a decimal string and panics on error. Intended for
// constants, fixtures and tests.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromFloat converts a JSON number into Money using the shortest
// decimal representation of the float, so 950.1 becomes exactly 950.1.
func NewMoneyFromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Sub subtracts another Money value and returns the result.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// IsZero returns true if the money value is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the money value is negative.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive returns true if the money value is positive.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// LessThan returns true if this Money value is less than another.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan returns true if this Money value is greater than another.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equals returns true if this Money value equals another.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// HasScale reports whether the amount needs at most places fractional digits.
// Trailing zeros do not count: 950.100 has scale 1.
func (m Money) HasScale(places int32) bool {
	return m.amount.Equal(m.amount.Truncate(places))
}

// ValidatePrice checks that m is positive and representable in cents, the
// precision every backend stores.
func ValidatePrice(m Money) error {
	if !m.IsPositive() {
		return ErrInvalidPrice
	}
	if !m.HasScale(PriceScale) {
		return ErrPricePrecision
	}
	return nil
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

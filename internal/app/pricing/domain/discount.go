package domain

import (
	"github.com/shopspring/decimal"
)

const discountPlaces = 1

var hundred = decimal.NewFromInt(100)

// ComputeDiscount returns the discount percentage that specialPrice represents
// against basePrice:
//
//	round(((basePrice - specialPrice) / basePrice) * 100, 1)
//
// Rounding is half-up to one decimal place. The multiplication happens before
// the division so exact halves (e.g. 49.95) are never perturbed by the
// division precision.
//
// A special price that is not strictly below the base price is rejected with
// ErrInvalidSpecialPrice; it is never clamped.
func ComputeDiscount(basePrice, specialPrice Money) (decimal.Decimal, error) {
	if !basePrice.IsPositive() || !specialPrice.IsPositive() {
		return decimal.Zero, ErrInvalidPrice
	}
	if !specialPrice.LessThan(basePrice) {
		return decimal.Zero, ErrInvalidSpecialPrice
	}

	saved := basePrice.Sub(specialPrice).Decimal()
	percent := saved.Mul(hundred).Div(basePrice.Decimal())

	// decimal.Round rounds half away from zero, which is half-up for the
	// strictly positive values reaching this point.
	return percent.Round(discountPlaces), nil
}

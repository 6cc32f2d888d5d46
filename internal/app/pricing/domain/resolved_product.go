package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolvedProduct is a product as seen by one user at one instant.
// It is built per request and never persisted.
type ResolvedProduct struct {
	Product         Product
	SpecialPrice    *Money
	DiscountPercent *decimal.Decimal
	HasSpecialPrice bool
	ValidFrom       *time.Time
	ValidUntil      *time.Time
}

// PlainView returns the product without any special price.
func PlainView(p Product) ResolvedProduct {
	return ResolvedProduct{Product: p}
}

// ApplySpecialPrice returns the product enriched with the given record.
// A nil record yields the plain view.
func ApplySpecialPrice(p Product, sp *SpecialPrice) ResolvedProduct {
	if sp == nil {
		return PlainView(p)
	}

	price := sp.SpecialPrice()
	discount := sp.DiscountPercent()
	from := sp.ValidFrom()
	until := sp.ValidUntil()

	return ResolvedProduct{
		Product:         p,
		SpecialPrice:    &price,
		DiscountPercent: &discount,
		HasSpecialPrice: true,
		ValidFrom:       &from,
		ValidUntil:      &until,
	}
}

// EffectivePrice is the special price when one applies, the base price otherwise.
func (r ResolvedProduct) EffectivePrice() Money {
	if r.HasSpecialPrice && r.SpecialPrice != nil {
		return *r.SpecialPrice
	}
	return r.Product.BasePrice
}

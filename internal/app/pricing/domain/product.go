package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var maxRating = decimal.NewFromInt(5)

// Product is a catalog entry. It is owned by the catalog and read-only to
// special price resolution.
type Product struct {
	ID          string
	Name        string
	Description string
	BasePrice   Money
	Category    string
	Stock       int64
	Image       string
	SKU         string
	Brand       string
	Rating      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the catalog invariants of a product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.BasePrice.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if strings.TrimSpace(p.SKU) == "" {
		return ErrEmptySKU
	}
	if p.Rating.IsNegative() || p.Rating.GreaterThan(maxRating) {
		return ErrInvalidRating
	}
	return nil
}

// Snapshot captures the product attributes copied onto a special price record.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:      p.Name,
		Image:     p.Image,
		BasePrice: p.BasePrice,
	}
}

package m_special_price

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the special_prices table.
type Data struct {
	SpecialPriceID  string             `spanner:"special_price_id"`
	UserID          string             `spanner:"user_id"`
	ClientID        string             `spanner:"client_id"`
	ProductID       string             `spanner:"product_id"`
	SpecialPrice    big.Rat            `spanner:"special_price"`
	DiscountPercent big.Rat            `spanner:"discount_percent"`
	ValidFrom       time.Time          `spanner:"valid_from"`
	ValidUntil      time.Time          `spanner:"valid_until"`
	Active          bool               `spanner:"active"`
	ProductName     string             `spanner:"product_name"`
	ProductImage    spanner.NullString `spanner:"product_image"`
	BasePrice       big.Rat            `spanner:"base_price"`
	CreatedBy       string             `spanner:"created_by"`
	CreatedAt       time.Time          `spanner:"created_at"`
	UpdatedAt       time.Time          `spanner:"updated_at"`
}

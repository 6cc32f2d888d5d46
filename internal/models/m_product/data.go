package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
// Prices and ratings are NUMERIC columns.
type Data struct {
	ProductID   string             `spanner:"product_id"`
	Name        string             `spanner:"name"`
	Description string             `spanner:"description"`
	Category    string             `spanner:"category"`
	BasePrice   big.Rat            `spanner:"base_price"`
	Stock       int64              `spanner:"stock"`
	Image       spanner.NullString `spanner:"image"`
	SKU         string             `spanner:"sku"`
	Brand       string             `spanner:"brand"`
	Rating      big.Rat            `spanner:"rating"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
}

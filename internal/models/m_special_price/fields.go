package m_special_price

// Field name constants for the special_prices table.
const (
	TableName = "special_prices"

	// TripleIndex enforces one record per (user, client, product).
	TripleIndex = "idx_special_prices_triple"

	SpecialPriceID  = "special_price_id"
	UserID          = "user_id"
	ClientID        = "client_id"
	ProductID       = "product_id"
	SpecialPrice    = "special_price"
	DiscountPercent = "discount_percent"
	ValidFrom       = "valid_from"
	ValidUntil      = "valid_until"
	Active          = "active"
	ProductName     = "product_name"
	ProductImage    = "product_image"
	BasePrice       = "base_price"
	CreatedBy       = "created_by"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)

// Columns lists every column in table order.
var Columns = []string{
	SpecialPriceID,
	UserID,
	ClientID,
	ProductID,
	SpecialPrice,
	DiscountPercent,
	ValidFrom,
	ValidUntil,
	Active,
	ProductName,
	ProductImage,
	BasePrice,
	CreatedBy,
	CreatedAt,
	UpdatedAt,
}

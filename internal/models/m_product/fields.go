package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ProductID   = "product_id"
	Name        = "name"
	Description = "description"
	Category    = "category"
	BasePrice   = "base_price"
	Stock       = "stock"
	Image       = "image"
	SKU         = "sku"
	Brand       = "brand"
	Rating      = "rating"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// Columns lists every column in table order.
var Columns = []string{
	ProductID,
	Name,
	Description,
	Category,
	BasePrice,
	Stock,
	Image,
	SKU,
	Brand,
	Rating,
	CreatedAt,
	UpdatedAt,
}

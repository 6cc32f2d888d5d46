package contracts

import (
	"context"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/shopspring/decimal"
)

// Sort orders accepted by ProductFilter.SortBy.
const (
	SortByName      = "name"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
	SortByRating    = "rating"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100

	// MaxPage bounds Page so Offset stays far from int overflow.
	MaxPage = 10000
)

// ProductFilter defines filtering options for listing products.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
	Page     int
	Limit    int
}

// Normalize fills defaults and clamps paging values.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	switch f.SortBy {
	case SortByName, SortByPriceAsc, SortByPriceDesc, SortByRating:
	default:
		f.SortBy = SortByName
	}
	return f
}

// Offset is the number of rows skipped before the current page.
func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products []domain.Product
	Total    int64
}

// ProductCatalog is the read side of the product catalog.
type ProductCatalog interface {
	// GetByID returns domain.ErrProductNotFound when the product does not exist.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetByIDs loads several products in one round trip. Unknown ids are
	// absent from the result; malformed ids fail with domain.ErrInvalidProductID.
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)

	// List returns one page of products matching the filter and the total match count.
	List(ctx context.Context, filter ProductFilter) (*ProductPage, error)

	// Insert adds a product and returns its assigned identity.
	Insert(ctx context.Context, product *domain.Product) (string, error)
}

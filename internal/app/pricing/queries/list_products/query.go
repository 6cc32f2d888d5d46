package list_products

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/resolver"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

// Request contains filtering, pagination and the optional user identity.
type Request struct {
	UserID   string
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
	Page     int
	Limit    int
}

// Response is one page of resolved products.
type Response struct {
	Products   []domain.ResolvedProduct
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	UserID     string
}

// Query handles the list products query use case.
type Query struct {
	catalog  contracts.ProductCatalog
	resolver *resolver.Resolver
	clock    clock.Clock
}

// NewQuery creates a new list products query.
func NewQuery(catalog contracts.ProductCatalog, resolver *resolver.Resolver, clock clock.Clock) *Query {
	return &Query{
		catalog:  catalog,
		resolver: resolver,
		clock:    clock,
	}
}

// Execute lists one page of the catalog and resolves special prices for the
// whole page in one lookup.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter := contracts.ProductFilter{
		Category: req.Category,
		Search:   req.Search,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		SortBy:   req.SortBy,
		Page:     req.Page,
		Limit:    req.Limit,
	}.Normalize()

	page, err := q.catalog.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := q.resolver.ResolveMany(ctx, page.Products, req.UserID, q.clock.Now())
	if err != nil {
		return nil, err
	}

	return &Response{
		Products:   views,
		Total:      page.Total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(page.Total, filter.Limit),
		UserID:     req.UserID,
	}, nil
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

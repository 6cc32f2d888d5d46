package resolve_products

import (
	"context"
	"fmt"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/resolver"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

// MaxProducts caps the ids accepted by one request.
const MaxProducts = 100

// Request names the products to price for an optional user.
type Request struct {
	UserID     string
	ProductIDs []string
}

// Query handles the resolve products query use case.
type Query struct {
	catalog  contracts.ProductCatalog
	resolver *resolver.Resolver
	clock    clock.Clock
}

// NewQuery creates a new resolve products query.
func NewQuery(catalog contracts.ProductCatalog, resolver *resolver.Resolver, clock clock.Clock) *Query {
	return &Query{
		catalog:  catalog,
		resolver: resolver,
		clock:    clock,
	}
}

// Execute loads the products with one catalog read, keeps request order and
// resolves them with a single special price lookup. Any unknown id fails the
// whole request.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.ResolvedProduct, error) {
	if len(req.ProductIDs) > MaxProducts {
		return nil, domain.ErrTooManyProducts
	}
	for _, id := range req.ProductIDs {
		if id == "" {
			return nil, domain.ErrEmptyProductID
		}
	}
	if len(req.ProductIDs) == 0 {
		return []domain.ResolvedProduct{}, nil
	}

	found, err := q.catalog.GetByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		p, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		products = append(products, p)
	}

	return q.resolver.ResolveMany(ctx, products, req.UserID, q.clock.Now())
}

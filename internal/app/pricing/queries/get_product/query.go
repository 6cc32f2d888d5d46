package get_product

import (
	"context"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/resolver"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

// Request contains the product ID to retrieve and the optional user identity.
type Request struct {
	ProductID string
	UserID    string
}

// Query handles the get product query use case.
type Query struct {
	catalog  contracts.ProductCatalog
	resolver *resolver.Resolver
	clock    clock.Clock
}

// NewQuery creates a new get product query.
func NewQuery(catalog contracts.ProductCatalog, resolver *resolver.Resolver, clock clock.Clock) *Query {
	return &Query{
		catalog:  catalog,
		resolver: resolver,
		clock:    clock,
	}
}

// Execute retrieves a product by ID as seen by the user.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.ResolvedProduct, error) {
	if req.ProductID == "" {
		return nil, domain.ErrEmptyProductID
	}

	product, err := q.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	view, err := q.resolver.ResolveOne(ctx, *product, req.UserID, q.clock.Now())
	if err != nil {
		return nil, err
	}
	return &view, nil
}

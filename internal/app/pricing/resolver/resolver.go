// Package resolver decides which special price, if any, a user sees for a
// product and applies that decision across product listings.
package resolver

import (
	"context"
	"time"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// ApplicableFinder looks up the records that apply to a user at an instant.
// It is satisfied by *store.Store.
type ApplicableFinder interface {
	FindApplicable(ctx context.Context, userID string, productIDs []string, now time.Time) (map[string]*domain.SpecialPrice, error)
}

// Resolver is the price resolution engine.
type Resolver struct {
	finder ApplicableFinder
}

// New creates a Resolver backed by finder.
func New(finder ApplicableFinder) *Resolver {
	return &Resolver{finder: finder}
}

// ResolveOne returns the view of product for userID at now. Without a user
// the product is returned unchanged. Absent, expired and inactive records all
// yield the plain view.
func (r *Resolver) ResolveOne(ctx context.Context, product domain.Product, userID string, now time.Time) (domain.ResolvedProduct, error) {
	if userID == "" {
		return domain.PlainView(product), nil
	}

	applicable, err := r.finder.FindApplicable(ctx, userID, []string{product.ID}, now)
	if err != nil {
		return domain.ResolvedProduct{}, err
	}

	return domain.ApplySpecialPrice(product, applicable[product.ID]), nil
}

// ResolveMany resolves every product with one batched lookup and returns the
// views in input order.
func (r *Resolver) ResolveMany(ctx context.Context, products []domain.Product, userID string, now time.Time) ([]domain.ResolvedProduct, error) {
	views := make([]domain.ResolvedProduct, len(products))

	if userID == "" || len(products) == 0 {
		for i, p := range products {
			views[i] = domain.PlainView(p)
		}
		return views, nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	applicable, err := r.finder.FindApplicable(ctx, userID, ids, now)
	if err != nil {
		return nil, err
	}

	for i, p := range products {
		views[i] = domain.ApplySpecialPrice(p, applicable[p.ID])
	}
	return views, nil
}

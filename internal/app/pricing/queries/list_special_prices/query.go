package list_special_prices

import (
	"context"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
)

// Request optionally narrows the listing to one user.
type Request struct {
	UserID string
}

// Response lists special price records.
type Response struct {
	SpecialPrices []*domain.SpecialPrice
	Total         int
}

// Query handles the list special prices query use case.
type Query struct {
	store *store.Store
}

// NewQuery creates a new list special prices query.
func NewQuery(store *store.Store) *Query {
	return &Query{store: store}
}

// Execute returns the records of the user, or all records without a user.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	records, err := q.store.FindByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return &Response{SpecialPrices: records, Total: len(records)}, nil
}

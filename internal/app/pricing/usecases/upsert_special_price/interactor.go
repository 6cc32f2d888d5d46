package upsert_special_price

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

// Request contains the data to create or update a special price.
type Request struct {
	UserID       string
	ClientID     string
	ProductID    string
	SpecialPrice domain.Money
}

// Response reports the outcome of the upsert.
type Response struct {
	ID              string
	WasCreated      bool
	Modified        bool
	DiscountPercent decimal.Decimal
	Record          *domain.SpecialPrice
}

// Interactor handles the upsert special price use case.
type Interactor struct {
	catalog contracts.ProductCatalog
	store   *store.Store
	clock   clock.Clock
}

// NewInteractor creates a new upsert special price interactor.
func NewInteractor(catalog contracts.ProductCatalog, store *store.Store, clock clock.Clock) *Interactor {
	return &Interactor{
		catalog: catalog,
		store:   store,
		clock:   clock,
	}
}

// Execute validates the request, loads the product and upserts the record
// against the product's current base price.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate input before touching storage
	triple := domain.Triple{UserID: req.UserID, ClientID: req.ClientID, ProductID: req.ProductID}
	if err := triple.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(req.SpecialPrice); err != nil {
		return nil, err
	}

	// 2. Load product
	product, err := i.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 3. Upsert at a single instant
	now := i.clock.Now()
	result, err := i.store.Upsert(ctx, &store.UpsertRequest{
		Triple:       triple,
		SpecialPrice: req.SpecialPrice,
		BasePrice:    product.BasePrice,
		Snapshot:     product.Snapshot(),
		Now:          now,
	})
	if err != nil {
		return nil, err
	}

	event := log.Info().
		Str("special_price_id", result.Record.ID()).
		Str("user_id", triple.UserID).
		Str("client_id", triple.ClientID).
		Str("product_id", triple.ProductID).
		Str("special_price", result.Record.SpecialPrice().String()).
		Str("discount_percent", result.Record.DiscountPercent().StringFixed(1))
	if result.WasCreated {
		event.Msg("special price created")
	} else {
		event.Bool("modified", result.Modified).Msg("special price updated")
	}

	return &Response{
		ID:              result.Record.ID(),
		WasCreated:      result.WasCreated,
		Modified:        result.Modified,
		DiscountPercent: result.Record.DiscountPercent(),
		Record:          result.Record,
	}, nil
}

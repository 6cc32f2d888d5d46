package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/get_product"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/list_products"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/list_special_prices"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/resolve_products"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/resolver"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/sampledata"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/usecases/upsert_special_price"
	"github.com/light-bringer/specialprice-service/internal/config"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Backend *Backend
	Clock   clock.Clock
	Store   *store.Store

	// Commands
	UpsertSpecialPrice *upsert_special_price.Interactor

	// Queries
	ListProducts      *list_products.Query
	GetProduct        *get_product.Query
	ListSpecialPrices *list_special_prices.Query
	ResolveProducts   *resolve_products.Query
}

// NewServiceOptions opens the configured backend and wires up all application
// dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.NewRealClock()
	opts := Wire(backend, clk, domain.ValidityPolicy{Months: cfg.SpecialPriceValidityMonths}, cfg.CreatedBy)

	// A memory backend starts empty; give local runs something to browse.
	if backend.Driver == config.DriverMemory {
		if err := opts.seedSampleData(ctx); err != nil {
			_ = backend.Close()
			return nil, err
		}
	}
	return opts, nil
}

// Wire builds the dependency graph on top of an opened backend.
func Wire(backend *Backend, clk clock.Clock, policy domain.ValidityPolicy, createdBy string) *ServiceOptions {
	// 1. Store and resolution engine
	st := store.NewStore(backend.SpecialPrices, policy, createdBy)
	res := resolver.New(st)

	// 2. Command use cases (write operations)
	upsert := upsert_special_price.NewInteractor(backend.Catalog, st, clk)

	// 3. Query use cases (read operations)
	return &ServiceOptions{
		Backend:            backend,
		Clock:              clk,
		Store:              st,
		UpsertSpecialPrice: upsert,
		ListProducts:       list_products.NewQuery(backend.Catalog, res, clk),
		GetProduct:         get_product.NewQuery(backend.Catalog, res, clk),
		ListSpecialPrices:  list_special_prices.NewQuery(st),
		ResolveProducts:    resolve_products.NewQuery(backend.Catalog, res, clk),
	}
}

func (s *ServiceOptions) seedSampleData(ctx context.Context) error {
	now := s.Clock.Now()
	bySKU, err := sampledata.SeedCatalog(ctx, s.Backend.Catalog, now)
	if err != nil {
		return err
	}
	created, err := sampledata.SeedOffers(ctx, s.Store, bySKU, now.Add(-time.Minute))
	if err != nil {
		return err
	}
	log.Info().Int("products", len(bySKU)).Int("special_prices", created).Msg("seeded in-memory backend")
	return nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Backend == nil {
		return
	}
	if err := s.Backend.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close backend")
	}
}

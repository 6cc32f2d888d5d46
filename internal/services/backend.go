package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo/memrepo"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo/mongorepo"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/repo/pgrepo"
	"github.com/light-bringer/specialprice-service/internal/config"
)

// Backend bundles the storage implementations selected by STORE_DRIVER.
type Backend struct {
	Driver        string
	SpecialPrices contracts.SpecialPriceCollection
	Catalog       contracts.ProductCatalog

	ping  func(ctx context.Context) error
	close func() error
}

// Ping checks that the store is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the store connection.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend connects to the configured store.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverSpanner:
		return openSpanner(ctx, cfg.SpannerDatabase)
	case config.DriverMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoSpecialPricesCollection)
	case config.DriverPostgres:
		return openPostgres(cfg.DatabaseURL)
	case config.DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewMemoryBackend returns an empty process-local backend.
func NewMemoryBackend() *Backend {
	return &Backend{
		Driver:        config.DriverMemory,
		SpecialPrices: memrepo.NewSpecialPriceCollection(),
		Catalog:       memrepo.NewCatalog(),
	}
}

func openSpanner(ctx context.Context, database string) (*Backend, error) {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w: %w", domain.ErrStoreUnavailable, err)
	}
	log.Info().Str("database", database).Msg("connected to spanner")

	return &Backend{
		Driver:        config.DriverSpanner,
		SpecialPrices: repo.NewSpecialPriceRepo(client),
		Catalog:       repo.NewCatalogRepo(client),
		ping:          func(ctx context.Context) error { return repo.Ping(ctx, client) },
		close: func() error {
			client.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, uri, database, collection string) (*Backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w: %w", domain.ErrStoreUnavailable, err)
	}
	db := client.Database(database)
	if err := mongorepo.Migrate(connectCtx, db, collection); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("database", database).Str("collection", collection).Msg("connected to mongo")

	return &Backend{
		Driver:        config.DriverMongo,
		SpecialPrices: mongorepo.NewSpecialPriceCollection(db, collection),
		Catalog:       mongorepo.NewCatalog(db),
		ping: func(ctx context.Context) error {
			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
			}
			return nil
		},
		close: func() error { return client.Disconnect(context.Background()) },
	}, nil
}

func openPostgres(dsn string) (*Backend, error) {
	db, err := pgrepo.Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := pgrepo.Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Msg("connected to postgres")

	return &Backend{
		Driver:        config.DriverPostgres,
		SpecialPrices: pgrepo.NewSpecialPriceRepo(db),
		Catalog:       pgrepo.NewCatalogRepo(db),
		ping:          func(ctx context.Context) error { return pgrepo.Ping(ctx, db) },
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

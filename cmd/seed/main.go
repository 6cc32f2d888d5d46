package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/sampledata"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
	"github.com/light-bringer/specialprice-service/internal/config"
	"github.com/light-bringer/specialprice-service/internal/pkg/logger"
	"github.com/light-bringer/specialprice-service/internal/services"
)

var withSpecialPrices = flag.Bool("special-prices", false, "Also upsert sample special prices")

func main() {
	flag.Parse()

	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	if cfg.StoreDriver == config.DriverMemory {
		return fmt.Errorf("nothing to seed: the %s driver is seeded on server start", config.DriverMemory)
	}

	backend, err := services.OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close backend")
		}
	}()

	now := time.Now().UTC()
	bySKU, err := sampledata.SeedCatalog(ctx, backend.Catalog, now)
	if err != nil {
		return err
	}
	log.Info().Str("driver", backend.Driver).Int("products", len(bySKU)).Msg("catalog seeded")

	if !*withSpecialPrices {
		return nil
	}

	st := store.NewStore(backend.SpecialPrices, domain.ValidityPolicy{Months: cfg.SpecialPriceValidityMonths}, cfg.CreatedBy)
	created, err := sampledata.SeedOffers(ctx, st, bySKU, now)
	if err != nil {
		return err
	}
	log.Info().Int("special_prices", created).Msg("special prices seeded")
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/specialprice-service/internal/config"
	"github.com/light-bringer/specialprice-service/internal/pkg/logger"
	"github.com/light-bringer/specialprice-service/internal/services"
	"github.com/light-bringer/specialprice-service/migrations"
)

var (
	driver     = flag.String("driver", "", "Store driver to migrate (defaults to STORE_DRIVER)")
	migrateDir = flag.String("migrations", "", "Directory of Spanner *.sql files (defaults to the embedded schema)")
	dryRun     = flag.Bool("dry-run", false, "Log pending Spanner DDL without applying it")
)

func main() {
	flag.Parse()

	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	if *driver != "" {
		cfg.StoreDriver = strings.ToLower(*driver)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	switch cfg.StoreDriver {
	case config.DriverSpanner:
		files, err := loadMigrations(*migrateDir)
		if err != nil {
			return err
		}
		return migrateSpanner(ctx, cfg.SpannerDatabase, files, *dryRun)

	case config.DriverMongo, config.DriverPostgres:
		// Opening the backend creates the Mongo indexes or runs gorm AutoMigrate.
		backend, err := services.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := backend.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close backend")
			}
		}()
		if err := backend.Ping(ctx); err != nil {
			return err
		}
		log.Info().Str("driver", backend.Driver).Msg("schema is up to date")
		return nil

	default:
		log.Info().Str("driver", cfg.StoreDriver).Msg("nothing to migrate")
		return nil
	}
}

func loadMigrations(dir string) ([]migrations.File, error) {
	if dir == "" {
		return migrations.Load(migrations.Embedded())
	}
	return migrations.Load(os.DirFS(dir))
}

package main

import (
	"context"
	"fmt"
	"os"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/specialprice-service/migrations"
)

// migrateSpanner brings the database named by dbPath up to the planned schema.
// Instances are only created against the emulator.
func migrateSpanner(ctx context.Context, dbPath string, files []migrations.File, dryRun bool) error {
	target, err := parseDatabasePath(dbPath)
	if err != nil {
		return err
	}
	planned := plannedStatements(files)

	emulator := os.Getenv("SPANNER_EMULATOR_HOST")
	if emulator != "" {
		log.Info().Str("host", emulator).Msg("using Spanner emulator")
	}

	if err := ensureInstance(ctx, target, emulator != ""); err != nil {
		return err
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer adminClient.Close()

	applied, exists, err := currentDDL(ctx, adminClient, target)
	if err != nil {
		return err
	}

	pending := pendingStatements(applied, planned)
	if len(pending) == 0 {
		log.Info().Str("database", target.Database).Msg("schema is up to date")
		return nil
	}
	if dryRun {
		for _, stmt := range pending {
			log.Info().Str("statement", stmt).Msg("pending")
		}
		return nil
	}

	if !exists {
		return createDatabase(ctx, adminClient, target, pending)
	}

	log.Info().Str("database", target.Database).Int("statements", len(pending)).Msg("applying DDL")
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   target.DatabasePath(),
		Statements: pending,
	})
	if err != nil {
		return fmt.Errorf("failed to start DDL update: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to apply DDL: %w", err)
	}
	log.Info().Str("database", target.Database).Msg("schema migrated")
	return nil
}

// currentDDL returns the statements of an existing database; exists is false
// when the database has not been created yet.
func currentDDL(ctx context.Context, adminClient *database.DatabaseAdminClient, target spannerTarget) ([]string, bool, error) {
	resp, err := adminClient.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: target.DatabasePath()})
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read database DDL: %w", err)
	}
	return resp.GetStatements(), true, nil
}

func createDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient, target spannerTarget, statements []string) error {
	log.Info().Str("database", target.Database).Int("statements", len(statements)).Msg("creating database")

	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          target.InstancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", target.Database),
		ExtraStatements: statements,
	})
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	log.Info().Str("database", target.Database).Msg("database created")
	return nil
}

func ensureInstance(ctx context.Context, target spannerTarget, emulator bool) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: target.InstancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to read instance %s: %w", target.Instance, err)
	}
	if !emulator {
		return fmt.Errorf("instance %s does not exist", target.InstancePath())
	}

	log.Info().Str("instance", target.Instance).Msg("creating emulator instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     target.ProjectPath(),
		InstanceId: target.Instance,
		Instance: &instancepb.Instance{
			Config:      target.ProjectPath() + "/instanceConfigs/emulator-config",
			DisplayName: "Special prices (emulator)",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance creation: %w", err)
	}
	return nil
}

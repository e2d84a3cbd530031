package main

import (
	"context"
	"os"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/joho/godotenv"

	"github.com/murkotick/price-comparator/internal/pkg/config"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
	"github.com/murkotick/price-comparator/internal/pkg/schema"
)

// Applies migrations/001_initial_schema.sql to PRICECMP_SPANNER_DATABASE,
// typically the emulator (SPANNER_EMULATOR_HOST=localhost:9010).
func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logg.WithField(ctx, "database", cfg.Spanner.Database)

	stmts, err := schema.ReadStatements(schema.InitialSchema)
	if err != nil {
		logg.Error(ctx, "failed to read DDL", err)
		os.Exit(1)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		logg.Error(ctx, "failed to create database admin client", err)
		os.Exit(1)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   cfg.Spanner.Database,
		Statements: stmts,
	})
	if err != nil {
		logg.Error(ctx, "UpdateDatabaseDdl failed", err)
		os.Exit(1)
	}
	if err := op.Wait(ctx); err != nil {
		logg.Error(ctx, "UpdateDatabaseDdl wait failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "statements", len(stmts)), "schema applied")
}

package main

import (
	"context"
	"fmt"

	_ "github.com/aemckenna/rig-calc/migrations"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/infrastructure/config"
	"github.com/aemckenna/rig-calc/internal/infrastructure/database"
	"github.com/aemckenna/rig-calc/internal/infrastructure/logging"
	"github.com/aemckenna/rig-calc/internal/kvstore"
	"github.com/aemckenna/rig-calc/internal/rig"
	"github.com/aemckenna/rig-calc/internal/session"
)

// loadCatalog returns the built-in catalogue, extended by the configured
// overlay file when there is one.
func loadCatalog(cfg config.RigConfig) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", cfg.CatalogFile, err)
	}
	return cat, nil
}

// openDatabase opens SQLite and applies pending migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, error) {
	db, err := database.Open(database.Config{
		Path:        cfg.Path,
		WALMode:     cfg.WALMode,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// openSession builds a session over the database and restores the stored rig.
func openSession(ctx context.Context, cfg *config.Config, db *database.DB, log *logging.Logger) (*session.Session, error) {
	cat, err := loadCatalog(cfg.Rig)
	if err != nil {
		return nil, err
	}

	sess := session.New(
		rig.NewValidator(cat, cfg.Rig.SupplyVoltage),
		kvstore.NewSQLiteStore(db.DB),
		session.Config{
			StorageKey:    cfg.Rig.StorageKey,
			SupplyVoltage: cfg.Rig.SupplyVoltage,
		},
		log.With("component", "session"),
	)
	n := sess.Load(ctx)
	log.Info("rig restored", "lines", n, "fixtures_in_catalog", cat.Len())
	return sess, nil
}

// Command migrate creates or updates the key-value table used by the sqlite and
// postgres store drivers. The API runs the same migration at startup.
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.StoreDriver != config.DriverSQLite && cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("store driver %q has no schema to migrate", cfg.StoreDriver)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return database.RunMigrations(db, logger)
}

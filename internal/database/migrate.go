package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/gateway"
)

// RunMigrations creates or updates the key-value table the gateway writes to
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running auto-migration", zap.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(&gateway.Entry{}); err != nil {
		return fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return nil
}

package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/inventory-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	// sanity check: ensure required core tables exist
	for _, table := range []string{"categories", "customers", "products", "orders"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

package db

import (
	"fmt"

	"github.com/diewo77/inventory-api/internal/models"
	"gorm.io/gorm"
)

// Seed inserts the default categories when the categories table is empty.
// It reports how many rows were inserted.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	cats := make([]models.Category, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		cats = append(cats, models.Category{Name: name})
	}
	if err := db.Create(&cats).Error; err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	return len(cats), nil
}

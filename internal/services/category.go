package services

import (
	"context"
	"strings"

	"github.com/diewo77/inventory-api/internal/models"
	"github.com/diewo77/inventory-api/internal/patch"
	"github.com/diewo77/inventory-api/internal/validation"
	"gorm.io/gorm"
)

// CategoryInput is the create / partial-update payload for a category.
type CategoryInput struct {
	Name        patch.Field[string] `json:"name"`
	Description patch.Field[string] `json:"description"`
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, lookupErr(err, EntityCategory)
	}
	return &cat, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if !in.Name.Present() || strings.TrimSpace(in.Name.Value) == "" {
		return nil, invalid(MsgCategoryNameRequired)
	}
	cat := models.Category{Name: strings.TrimSpace(in.Name.Value)}
	if in.Description.Present() {
		cat.Description = optional(in.Description)
	}
	if err := validateCategory(&cat); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		if isDuplicate(err) {
			return nil, invalid(MsgCategoryExists)
		}
		return nil, err
	}
	return &cat, nil
}

// Update applies only the members present in in.
func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	var cat models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, id).Error; err != nil {
			return lookupErr(err, EntityCategory)
		}
		if in.Name.Set {
			if strings.TrimSpace(in.Name.Value) == "" {
				return invalid(MsgCategoryNameRequired)
			}
			cat.Name = strings.TrimSpace(in.Name.Value)
		}
		if in.Description.Set {
			cat.Description = optional(in.Description)
		}
		if err := validateCategory(&cat); err != nil {
			return err
		}
		if err := tx.Save(&cat).Error; err != nil {
			if isDuplicate(err) {
				return invalid(MsgCategoryExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes the category, its products and their orders in one transaction.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			return lookupErr(err, EntityCategory)
		}
		var productIDs []uint
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&models.Order{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", productIDs).Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&cat).Error
	})
}

func validateCategory(cat *models.Category) error {
	v := make(validation.Violations)
	validation.MaxLen("name", cat.Name, models.CategoryNameMaxLen, MsgCategoryNameTooLong, v)
	if cat.Description != nil {
		validation.MaxLen("description", *cat.Description, models.CategoryDescriptionMaxLen, MsgCategoryDescTooLong, v)
	}
	if !v.Empty() {
		return invalidFields(v, "name", "description")
	}
	return nil
}

// optional maps a nullable string member to its stored form.
func optional(f patch.Field[string]) *string {
	if f.Null {
		return nil
	}
	s := strings.TrimSpace(f.Value)
	return &s
}

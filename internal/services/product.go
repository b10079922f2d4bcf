package services

import (
	"context"
	"strings"

	"github.com/diewo77/inventory-api/internal/models"
	"github.com/diewo77/inventory-api/internal/patch"
	"github.com/diewo77/inventory-api/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductInput is the create / partial-update payload for a product.
// Price accepts a JSON number or a numeric string.
type ProductInput struct {
	Name        patch.Field[string]        `json:"name"`
	Price       patch.Field[patch.Numeric] `json:"price"`
	Status      patch.Field[string]        `json:"status"`
	Description patch.Field[string]        `json:"description"`
	Supplier    patch.Field[string]        `json:"supplier"`
	CategoryID  patch.Field[uint]          `json:"category_id"`
}

// ProductFilter narrows List. A nil CategoryID lists every product.
type ProductFilter struct {
	CategoryID *uint
}

// productFieldOrder decides which violation is reported when several fields fail.
var productFieldOrder = []string{"price", "name", "status", "description", "supplier"}

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	products := []models.Product{}
	q := s.db.WithContext(ctx).Preload("Category").Order("id")
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return loadProduct(s.db.WithContext(ctx), id)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if !in.Name.Present() || in.Name.Value == "" || !in.Price.Present() {
		return nil, invalid(MsgProductMissingFields)
	}
	p := models.Product{Status: models.ProductStatusAvailable}
	v := make(validation.Violations)
	applyProduct(&p, in, v)
	if !v.Empty() {
		return nil, invalidFields(v, productFieldOrder...)
	}

	var out *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(tx, &p); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return err
		}
		var err error
		out, err = loadProduct(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies only the members present in in. An explicit null clears
// category_id, description and supplier, and resets status to the default.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	var out *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr(err, EntityProduct)
		}
		v := make(validation.Violations)
		applyProduct(&p, in, v)
		if !v.Empty() {
			return invalidFields(v, productFieldOrder...)
		}
		if in.CategoryID.Present() {
			if err := checkCategory(tx, &p); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return err
		}
		var err error
		out, err = loadProduct(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the product and its orders in one transaction.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr(err, EntityProduct)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// applyProduct copies present members of in onto p, recording violations in v.
func applyProduct(p *models.Product, in ProductInput, v validation.Violations) {
	if in.Name.Set {
		p.Name = strings.TrimSpace(in.Name.Value)
		validation.MinLen("name", p.Name, models.ProductNameMinLen, MsgNameTooShort, v)
		validation.MaxLen("name", p.Name, models.ProductNameMaxLen, MsgNameTooLong, v)
	}
	if in.Price.Set {
		price, err := in.Price.Value.Float()
		if err != nil || in.Price.Null {
			v.Add("price", MsgPriceNotNumeric)
		} else {
			validation.PositiveFloat("price", price, MsgPricePositive, v)
			p.Price = price
		}
	}
	if in.Status.Set {
		p.Status = strings.TrimSpace(in.Status.Value)
		if p.Status == "" {
			p.Status = models.ProductStatusAvailable
		}
		validation.MaxLen("status", p.Status, models.ProductStatusMaxLen, MsgStatusTooLong, v)
	}
	if in.Description.Set {
		p.Description = optional(in.Description)
		if p.Description != nil {
			validation.MaxLen("description", *p.Description, models.ProductDescriptionMaxLen, MsgDescriptionTooLong, v)
		}
	}
	if in.Supplier.Set {
		p.Supplier = optional(in.Supplier)
		if p.Supplier != nil {
			validation.MaxLen("supplier", *p.Supplier, models.ProductSupplierMaxLen, MsgSupplierTooLong, v)
		}
	}
	if in.CategoryID.Set {
		if in.CategoryID.Null {
			p.CategoryID = nil
		} else {
			id := in.CategoryID.Value
			p.CategoryID = &id
		}
		p.Category = nil
	}
}

// checkCategory enforces that a non-null category_id names an existing row.
func checkCategory(tx *gorm.DB, p *models.Product) error {
	if !p.HasCategory() {
		return nil
	}
	ok, err := exists(tx, &models.Category{}, *p.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return missingRef(EntityCategory)
	}
	return nil
}

func loadProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := tx.Preload("Category").First(&p, id).Error; err != nil {
		return nil, lookupErr(err, EntityProduct)
	}
	return &p, nil
}

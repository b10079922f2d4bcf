package services

import (
	"context"
	"time"

	"github.com/diewo77/inventory-api/internal/models"
	"github.com/diewo77/inventory-api/internal/patch"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderInput is the create / partial-update payload for an order.
// Every member accepts a JSON number (truncated) or an integer string.
type OrderInput struct {
	ProductID  patch.Field[patch.Numeric] `json:"product_id"`
	CustomerID patch.Field[patch.Numeric] `json:"customer_id"`
	Quantity   patch.Field[patch.Numeric] `json:"quantity"`
}

type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, now: time.Now}
}

// List returns orders newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := withOrderRelations(s.db.WithContext(ctx)).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return loadOrder(s.db.WithContext(ctx), id)
}

func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	if !given(in.ProductID) || !given(in.CustomerID) {
		return nil, invalid(MsgOrderMissingFields)
	}
	qty := models.DefaultOrderQuantity
	if in.Quantity.Present() {
		var err error
		if qty, err = quantity(in.Quantity.Value); err != nil {
			return nil, err
		}
	}

	var out *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productID, customerID, err := resolveOrderRefs(tx, &in.ProductID.Value, &in.CustomerID.Value)
		if err != nil {
			return err
		}
		o := models.Order{
			ProductID:  productID,
			CustomerID: customerID,
			Quantity:   qty,
			OrderDate:  s.now().UTC(),
		}
		if err := tx.Omit(clause.Associations).Create(&o).Error; err != nil {
			return err
		}
		out, err = loadOrder(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies only the members present in in. References are re-checked
// whenever they are supplied; order_date never changes.
func (s *OrderService) Update(ctx context.Context, id uint, in OrderInput) (*models.Order, error) {
	var out *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			return lookupErr(err, EntityOrder)
		}
		var productRef, customerRef *patch.Numeric
		if in.ProductID.Set {
			productRef = &in.ProductID.Value
		}
		if in.CustomerID.Set {
			customerRef = &in.CustomerID.Value
		}
		productID, customerID, err := resolveOrderRefs(tx, productRef, customerRef)
		if err != nil {
			return err
		}
		if productRef != nil {
			o.ProductID = productID
		}
		if customerRef != nil {
			o.CustomerID = customerID
		}
		if in.Quantity.Set {
			qty, err := quantity(in.Quantity.Value)
			if err != nil {
				return err
			}
			o.Quantity = qty
		}
		if err := tx.Omit(clause.Associations).Save(&o).Error; err != nil {
			return err
		}
		out, err = loadOrder(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			return lookupErr(err, EntityOrder)
		}
		return tx.Delete(&o).Error
	})
}

// given reports whether a reference member was sent with a usable value.
// A numeric zero counts as not sent.
func given(f patch.Field[patch.Numeric]) bool {
	if !f.Present() {
		return false
	}
	id, err := f.Value.Int()
	return err != nil || id != 0
}

// resolveOrderRefs checks the supplied references, product first, and returns
// their ids. A nil reference is skipped. A value that is not a positive
// integer, including an explicit null, never resolves.
func resolveOrderRefs(tx *gorm.DB, productRef, customerRef *patch.Numeric) (productID, customerID uint, err error) {
	if productRef != nil {
		if productID, err = resolveRef(tx, &models.Product{}, EntityProduct, *productRef); err != nil {
			return 0, 0, err
		}
	}
	if customerRef != nil {
		if customerID, err = resolveRef(tx, &models.Customer{}, EntityCustomer, *customerRef); err != nil {
			return 0, 0, err
		}
	}
	return productID, customerID, nil
}

func resolveRef(tx *gorm.DB, model any, entity string, ref patch.Numeric) (uint, error) {
	id, err := ref.Int()
	if err != nil || id <= 0 {
		return 0, missingRef(entity)
	}
	ok, err := exists(tx, model, uint(id))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, missingRef(entity)
	}
	return uint(id), nil
}

// quantity coerces the member to an integer. Any integer is accepted.
func quantity(n patch.Numeric) (int, error) {
	qty, err := n.Int()
	if err != nil {
		return 0, invalid(MsgQuantityNotInteger)
	}
	return qty, nil
}

func withOrderRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Product.Category").Preload("Customer")
}

func loadOrder(tx *gorm.DB, id uint) (*models.Order, error) {
	var o models.Order
	if err := withOrderRelations(tx).First(&o, id).Error; err != nil {
		return nil, lookupErr(err, EntityOrder)
	}
	return &o, nil
}

package services

import (
	"context"
	"strings"

	"github.com/diewo77/inventory-api/internal/models"
	"github.com/diewo77/inventory-api/internal/patch"
	"github.com/diewo77/inventory-api/internal/validation"
	"gorm.io/gorm"
)

// CustomerInput is the create / partial-update payload for a customer.
type CustomerInput struct {
	Name  patch.Field[string] `json:"name"`
	Email patch.Field[string] `json:"email"`
}

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := s.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, lookupErr(err, EntityCustomer)
	}
	return &c, nil
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(in.Name.Value)
	email := strings.TrimSpace(in.Email.Value)
	if !in.Name.Present() || !in.Email.Present() || name == "" || email == "" {
		return nil, invalid(MsgCustomerMissingFields)
	}
	c := models.Customer{Name: name, Email: email}
	if err := validateCustomer(&c); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isDuplicate(err) {
			return nil, invalid(MsgCustomerEmailExists)
		}
		return nil, err
	}
	return &c, nil
}

// Update applies only the members present in in. Both members are required,
// so an explicit null is rejected like an empty value.
func (s *CustomerService) Update(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error) {
	var c models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return lookupErr(err, EntityCustomer)
		}
		v := make(validation.Violations)
		if in.Name.Set {
			c.Name = strings.TrimSpace(in.Name.Value)
			validation.Required("name", c.Name, MsgCustomerNameRequired, v)
		}
		if in.Email.Set {
			c.Email = strings.TrimSpace(in.Email.Value)
			validation.Required("email", c.Email, MsgCustomerEmailRequired, v)
		}
		if !v.Empty() {
			return invalidFields(v, "name", "email")
		}
		if err := validateCustomer(&c); err != nil {
			return err
		}
		if err := tx.Save(&c).Error; err != nil {
			if isDuplicate(err) {
				return invalid(MsgCustomerEmailExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the customer and all of their orders in one transaction.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Customer
		if err := tx.First(&c, id).Error; err != nil {
			return lookupErr(err, EntityCustomer)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
}

func validateCustomer(c *models.Customer) error {
	v := make(validation.Violations)
	validation.MaxLen("name", c.Name, models.CustomerNameMaxLen, MsgCustomerNameTooLong, v)
	validation.MaxLen("email", c.Email, models.CustomerEmailMaxLen, MsgCustomerEmailTooLong, v)
	validation.Email("email", c.Email, MsgCustomerEmailInvalid, v)
	if !v.Empty() {
		return invalidFields(v, "name", "email")
	}
	return nil
}

package services

import (
	"errors"
	"strings"

	"github.com/diewo77/inventory-api/internal/validation"
	"gorm.io/gorm"
)

// Kind classifies errors a caller is expected to report to the client.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
)

// Error is a client-facing failure. Anything else returned by a service is internal.
type Error struct {
	Kind       Kind
	Message    string
	Violations validation.Violations
}

func (e *Error) Error() string { return e.Message }

// Messages returned to clients.
const (
	MsgInvalidBody = "Invalid JSON body"

	MsgCategoryNameRequired  = "Missing required field: name"
	MsgCategoryNameTooLong   = "Category name must be at most 80 characters"
	MsgCategoryDescTooLong   = "Category description must be at most 255 characters"
	MsgCategoryExists        = "Category already exists"
	MsgCustomerMissingFields = "Missing required fields: name, email"
	MsgCustomerNameRequired  = "Customer name cannot be empty"
	MsgCustomerEmailRequired = "Customer email cannot be empty"
	MsgCustomerNameTooLong   = "Customer name must be at most 120 characters"
	MsgCustomerEmailTooLong  = "Customer email must be at most 120 characters"
	MsgCustomerEmailInvalid  = "Invalid email address"
	MsgCustomerEmailExists   = "Customer with this email already exists"
	MsgProductMissingFields  = "Missing required fields: name, price"
	MsgPriceNotNumeric       = "Cena musi być liczbą"
	MsgPricePositive         = "Cena musi być dodatnia"
	MsgNameTooShort          = "Nazwa musi mieć co najmniej 2 znaki"
	MsgNameTooLong           = "Nazwa może mieć maksymalnie 100 znaków"
	MsgStatusTooLong         = "Status must be at most 20 characters"
	MsgDescriptionTooLong    = "Description must be at most 255 characters"
	MsgSupplierTooLong       = "Supplier must be at most 100 characters"
	MsgOrderMissingFields    = "Missing required fields: product_id, customer_id"
	MsgQuantityNotInteger    = "Quantity must be an integer"
)

// Entity names used in not-found messages.
const (
	EntityCategory = "Category"
	EntityCustomer = "Customer"
	EntityProduct  = "Product"
	EntityOrder    = "Order"
)

func invalid(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// invalidFields reports the first violation in field order.
func invalidFields(v validation.Violations, order ...string) *Error {
	return &Error{Kind: KindValidation, Message: v.First(order...), Violations: v}
}

func notFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// missingRef is a validation failure: a referenced row does not exist.
func missingRef(entity string) *Error {
	return &Error{Kind: KindValidation, Message: entity + " not found"}
}

// IsValidation reports whether err is a client validation failure.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

func kindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// lookupErr turns gorm.ErrRecordNotFound into a not-found error for entity.
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

// exists reports whether a row of model with the given id exists.
func exists(tx *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

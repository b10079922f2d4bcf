package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/diewo77/inventory-api/internal/db"
	"github.com/diewo77/inventory-api/internal/models"
	"github.com/diewo77/inventory-api/internal/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	d, err := db.OpenSQLite(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))
	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return d
}

// decode builds an input payload the same way the HTTP layer does.
func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var in T
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func assertKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, kind, se.Kind)
	assert.Equal(t, msg, se.Message)
}

type fixture struct {
	ctx        context.Context
	db         *gorm.DB
	categories *CategoryService
	customers  *CustomerService
	products   *ProductService
	orders     *OrderService
}

func newFixture(t *testing.T) *fixture {
	d := setupTestDB(t)
	return &fixture{
		ctx:        context.Background(),
		db:         d,
		categories: NewCategoryService(d),
		customers:  NewCustomerService(d),
		products:   NewProductService(d),
		orders:     NewOrderService(d),
	}
}

func (f *fixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := f.categories.Create(f.ctx, CategoryInput{Name: patch.Value(name)})
	require.NoError(t, err)
	return c
}

func (f *fixture) customer(t *testing.T, name, email string) *models.Customer {
	t.Helper()
	c, err := f.customers.Create(f.ctx, CustomerInput{Name: patch.Value(name), Email: patch.Value(email)})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price float64, categoryID *uint) *models.Product {
	t.Helper()
	in := ProductInput{Name: patch.Value(name), Price: patch.Value(patch.NumberOf(price))}
	if categoryID != nil {
		in.CategoryID = patch.Value(*categoryID)
	}
	p, err := f.products.Create(f.ctx, in)
	require.NoError(t, err)
	return p
}

func (f *fixture) order(t *testing.T, productID, customerID uint) *models.Order {
	t.Helper()
	o, err := f.orders.Create(f.ctx, OrderInput{ProductID: ref(productID), CustomerID: ref(customerID)})
	require.NoError(t, err)
	return o
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, IsValidation(invalid("x")))
	assert.False(t, IsNotFound(invalid("x")))
	assert.True(t, IsNotFound(notFound(EntityOrder)))
	assert.Equal(t, "Order not found", notFound(EntityOrder).Error())
	assert.False(t, IsValidation(assert.AnError))
	assert.True(t, IsValidation(missingRef(EntityCustomer)))
}

func TestIsDuplicate(t *testing.T) {
	assert.False(t, isDuplicate(nil))
	assert.True(t, isDuplicate(gorm.ErrDuplicatedKey))
	assert.False(t, isDuplicate(gorm.ErrRecordNotFound))
}

// ref builds a reference member the way a JSON number decodes.
func ref(id uint) patch.Field[patch.Numeric] {
	return patch.Value(patch.NumberOf(float64(id)))
}

func uintStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

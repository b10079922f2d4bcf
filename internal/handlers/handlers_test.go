package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/inventory-api/internal/db"
	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/models"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:handlers_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
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

func newRouter(t *testing.T, d *gorm.DB) (*chi.Mux, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	r := chi.NewRouter()
	Mount(r, "/categories", NewCategoryHandler(services.NewCategoryService(d), log))
	Mount(r, "/customers", NewCustomerHandler(services.NewCustomerService(d), log))
	Mount(r, "/products", NewProductHandler(services.NewProductService(d), log))
	Mount(r, "/orders", NewOrderHandler(services.NewOrderService(d), log))
	return r, hook
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body=%s", w.Body.String())
	return resp.Error
}

func TestProductCreateAndView(t *testing.T) {
	d := setupTestDB(t)
	r, _ := newRouter(t, d)

	w := do(t, r, http.MethodPost, "/products", `{"name":"Laptop","price":10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, 10.0, p.Price)
	assert.Equal(t, models.ProductStatusAvailable, p.Status)
	assert.Nil(t, p.CategoryID)
	assert.Contains(t, w.Body.String(), `"category_id":null`)

	w = do(t, r, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Laptop"`)
}

func TestProductCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative price", `{"name":"A","price":-5}`, services.MsgPricePositive},
		{"zero price", `{"name":"Laptop","price":0}`, services.MsgPricePositive},
		{"text price", `{"name":"Laptop","price":"abc"}`, services.MsgPriceNotNumeric},
		{"missing price", `{"name":"Laptop"}`, services.MsgProductMissingFields},
		{"short name", `{"name":" A ","price":3}`, services.MsgNameTooShort},
		{"unknown category", `{"name":"Laptop","price":3,"category_id":42}`, "Category not found"},
		{"malformed", `{"name":`, services.MsgInvalidBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter(t, setupTestDB(t))
			w := do(t, r, http.MethodPost, "/products", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.want, errorOf(t, w))
		})
	}
}

func TestProductListFilter(t *testing.T) {
	d := setupTestDB(t)
	r, _ := newRouter(t, d)

	w := do(t, r, http.MethodPost, "/categories", `{"name":"Elektronika"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/products", `{"name":"Laptop","price":10,"category_id":1}`).Code)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/products", `{"name":"Bread","price":"2.5"}`).Code)

	w = do(t, r, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = do(t, r, http.MethodGet, "/products?category_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Laptop", filtered[0].Name)
	require.NotNil(t, filtered[0].Category)
	assert.Equal(t, "Elektronika", filtered[0].Category.Name)

	w = do(t, r, http.MethodGet, "/products?category_id=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category_id", errorOf(t, w))
}

func TestNotFoundByID(t *testing.T) {
	r, _ := newRouter(t, setupTestDB(t))

	tests := []struct {
		method string
		path   string
		body   string
		want   string
	}{
		{http.MethodGet, "/products/999", "", "Product not found"},
		{http.MethodPut, "/products/999", `{"price":4}`, "Product not found"},
		{http.MethodDelete, "/categories/999", "", "Category not found"},
		{http.MethodGet, "/customers/abc", "", "Customer not found"},
		{http.MethodDelete, "/orders/0", "", "Order not found"},
	}
	for _, tt := range tests {
		t.Run(tt.method+tt.path, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
			assert.Equal(t, tt.want, errorOf(t, w))
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	d := setupTestDB(t)
	r, _ := newRouter(t, d)

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/products", `{"name":"Laptop","price":10}`).Code)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/customers", `{"name":"Jan","email":"jan@example.com"}`).Code)

	w := do(t, r, http.MethodPost, "/orders", `{"product_id":1,"customer_id":7}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Customer not found", errorOf(t, w))

	w = do(t, r, http.MethodPost, "/orders", `{"product_id":1,"customer_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var o models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Equal(t, models.DefaultOrderQuantity, o.Quantity)
	require.NotNil(t, o.Product)
	require.NotNil(t, o.Customer)
	assert.Equal(t, "jan@example.com", o.Customer.Email)

	w = do(t, r, http.MethodPut, "/orders/1", `{"quantity":"3"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"quantity":3`)

	w = do(t, r, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Product deleted"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/orders/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryAndCustomerDuplicates(t *testing.T) {
	r, _ := newRouter(t, setupTestDB(t))

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/categories", `{"name":"Inne"}`).Code)
	w := do(t, r, http.MethodPost, "/categories", `{"name":"Inne"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.MsgCategoryExists, errorOf(t, w))

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/customers", `{"name":"Jan","email":"jan@example.com"}`).Code)
	w = do(t, r, http.MethodPost, "/customers", `{"name":"Anna","email":"jan@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.MsgCustomerEmailExists, errorOf(t, w))
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	r, _ := newRouter(t, setupTestDB(t))

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/categories", `{"name":"Inne","description":"misc"}`).Code)

	w := do(t, r, http.MethodPut, "/categories/1", `{"description":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Inne","description":null}`, w.Body.String())

	w = do(t, r, http.MethodPut, "/categories/1", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, "/categories/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Category deleted"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestInternalErrorIsLogged(t *testing.T) {
	d := setupTestDB(t)
	r, hook := newRouter(t, d)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := do(t, r, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorOf(t, w))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "/customers", entry.Data["path"])
}

func TestHealthHandler(t *testing.T) {
	d := setupTestDB(t)
	log, _ := test.NewNullLogger()
	h := NewHealthHandler(d, log)

	w := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "up", resp.Database)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

func TestValidationFailureLogsViolations(t *testing.T) {
	r, hook := newRouter(t, setupTestDB(t))

	w := do(t, r, http.MethodPost, "/products", `{"name":"A","price":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Cena musi być dodatnia"}`, w.Body.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, services.MsgPricePositive, entry.Data["violation.price"])
	assert.Equal(t, services.MsgNameTooShort, entry.Data["violation.name"])
}

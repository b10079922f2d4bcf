package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	svc *services.ProductService
	log logrus.FieldLogger
}

func NewProductHandler(svc *services.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

// List accepts an optional ?category_id= filter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter services.ProductFilter
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid category_id")
			return
		}
		catID := uint(id)
		filter.CategoryID = &catID
	}
	products, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityProduct)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("product_id", p.ID).Info("product created")
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityProduct)
		return
	}
	var in services.ProductInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	p, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityProduct)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("product_id", id).Info("product deleted")
	httpx.Message(w, "Product deleted")
}

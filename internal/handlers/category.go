package handlers

import (
	"net/http"

	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	svc *services.CategoryService
	log logrus.FieldLogger
}

func NewCategoryHandler(svc *services.CategoryService, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cats)
}

func (h *CategoryHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityCategory)
		return
	}
	cat, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	cat, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("category_id", cat.ID).Info("category created")
	httpx.JSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityCategory)
		return
	}
	var in services.CategoryInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	cat, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityCategory)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("category_id", id).Info("category deleted")
	httpx.Message(w, "Category deleted")
}

package handlers

import (
	"net/http"

	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	svc *services.OrderService
	log logrus.FieldLogger
}

func NewOrderHandler(svc *services.OrderService, log logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityOrder)
		return
	}
	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("order_id", o.ID).Info("order created")
	httpx.JSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityOrder)
		return
	}
	var in services.OrderInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	o, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityOrder)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("order_id", id).Info("order deleted")
	httpx.Message(w, "Order deleted")
}

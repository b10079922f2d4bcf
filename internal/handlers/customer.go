package handlers

import (
	"net/http"

	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/sirupsen/logrus"
)

type CustomerHandler struct {
	svc *services.CustomerService
	log logrus.FieldLogger
}

func NewCustomerHandler(svc *services.CustomerService, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: log}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityCustomer)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CustomerInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("customer_id", c.ID).Info("customer created")
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityCustomer)
		return
	}
	var in services.CustomerInput
	if err := decodeInput(w, r, &in); err != nil {
		invalidBody(w)
		return
	}
	c, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, services.EntityCustomer)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.WithField("customer_id", id).Info("customer deleted")
	httpx.Message(w, "Customer deleted")
}

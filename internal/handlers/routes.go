package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Resource is implemented by every entity handler.
type Resource interface {
	List(w http.ResponseWriter, r *http.Request)
	View(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// Mount registers list / fetch / create / update / delete for h under pattern.
func Mount(r chi.Router, pattern string, h Resource) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.View)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

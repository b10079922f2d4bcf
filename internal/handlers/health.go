package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/inventory-api/internal/db"
	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler reports whether the store answers queries.
type HealthHandler struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewHealthHandler(d *gorm.DB, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: d, log: log}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Database: "up", Timestamp: time.Now().UTC()}
	status := http.StatusOK
	if err := db.Ping(h.db.WithContext(r.Context())); err != nil {
		h.log.WithError(err).Warn("health check: database unreachable")
		resp.Status, resp.Database = "degraded", "down"
		status = http.StatusServiceUnavailable
	}
	httpx.JSON(w, status, resp)
}

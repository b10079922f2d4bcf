package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// pathID reads the {id} route parameter. ok is false for anything that is not
// a positive integer, which callers report as not found.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decodeInput reads a JSON object into dst. An empty body decodes as {}.
func decodeInput(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeError maps service errors to 400 / 404 and everything else to 500.
// Validation failures are logged at debug level with every violated field.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	switch {
	case services.IsValidation(err):
		fields := logrus.Fields{"path": r.URL.Path, "error": err.Error()}
		var se *services.Error
		if errors.As(err, &se) {
			for field, msg := range se.Violations {
				fields["violation."+field] = msg
			}
		}
		log.WithFields(fields).Debug("validation failed")
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		httpx.JSONError(w, http.StatusNotFound, err.Error())
	default:
		log.WithError(err).WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Error("request failed")
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func notFound(w http.ResponseWriter, entity string) {
	httpx.JSONError(w, http.StatusNotFound, entity+" not found")
}

func invalidBody(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusBadRequest, services.MsgInvalidBody)
}

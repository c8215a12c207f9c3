// Package respond writes JSON bodies and maps domain errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/acquitrack/internal/logger"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/report"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Error writes err with the status its sentinel maps to. Unrecognised errors are logged and hidden behind a 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, status, errorBody{Error: "internal error"})

		return
	}

	JSON(w, status, errorBody{Error: err.Error()})
}

// BadRequest reports a malformed request that never reached a service.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func Status(err error) int {
	switch {
	case errors.Is(err, purchaserequest.ErrNotFound),
		errors.Is(err, vendor.ErrNotFound),
		errors.Is(err, report.ErrUnknownReport):
		return http.StatusNotFound
	case errors.Is(err, purchaserequest.ErrInvalidTransition),
		errors.Is(err, vendor.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, purchaserequest.ErrValidation),
		errors.Is(err, vendor.ErrValidation),
		errors.Is(err, report.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/acquitrack/internal/http/respond"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/report"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "PRNotFound", err: fmt.Errorf("loading: %w", purchaserequest.ErrNotFound), want: http.StatusNotFound},
		{name: "VendorNotFound", err: vendor.ErrNotFound, want: http.StatusNotFound},
		{name: "UnknownReport", err: report.ErrUnknownReport, want: http.StatusNotFound},
		{name: "InvalidTransition", err: purchaserequest.ErrInvalidTransition, want: http.StatusConflict},
		{name: "DuplicateBeforeValidation", err: vendor.ErrDuplicate, want: http.StatusConflict},
		{name: "PRValidation", err: purchaserequest.ErrValidation, want: http.StatusBadRequest},
		{name: "VendorValidation", err: vendor.ErrValidation, want: http.StatusBadRequest},
		{name: "UnsupportedFormat", err: report.ErrUnsupportedFormat, want: http.StatusBadRequest},
		{name: "Other", err: errors.New("disk full"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	respond.Error(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

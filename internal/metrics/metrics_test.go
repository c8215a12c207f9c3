package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/metrics"
)

func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)

	return string(body)
}

func TestRecorder_Observe(t *testing.T) {
	rec := metrics.NewRecorder()

	rec.Observe("purchase_request.create", 20*time.Millisecond, nil)
	rec.Observe("purchase_request.transition", time.Millisecond, errors.New("boom"))

	body := scrape(t, rec)
	assert.Contains(t, body, `acquitrack_operation_duration_seconds_count{operation="purchase_request.create",result="success"} 1`)
	assert.Contains(t, body, `acquitrack_operation_duration_seconds_count{operation="purchase_request.transition",result="error"} 1`)
}

func TestRecorder_Middleware(t *testing.T) {
	rec := metrics.NewRecorder()

	r := chi.NewRouter()
	r.Use(rec.Middleware)
	r.Get("/purchase-requests/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/purchase-requests/"+id, nil))
	}

	body := scrape(t, rec)
	assert.Contains(t, body, `acquitrack_http_requests_total{method="GET",route="/purchase-requests/{id}",status="404"} 2`)
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/http/middleware"
)

const secret = "test-secret"

func echoActor(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(actor.FromContext(r.Context()).ID))
}

func TestAuthenticate(t *testing.T) {
	fallback := actor.Actor{ID: "user-1", Name: "John Smith"}

	valid, err := middleware.IssueToken(secret, actor.Actor{ID: "user-2", Name: "Sarah Johnson"}, "contracting_officer", time.Hour)
	require.NoError(t, err)

	expired, err := middleware.IssueToken(secret, actor.Actor{ID: "user-2", Name: "Sarah Johnson"}, "", -time.Minute)
	require.NoError(t, err)

	forged, err := middleware.IssueToken("other-secret", actor.Actor{ID: "user-6", Name: "Admin"}, "admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantActor  string
	}{
		{name: "NoHeaderUsesFallback", secret: secret, wantStatus: http.StatusOK, wantActor: "user-1"},
		{name: "ValidToken", secret: secret, header: "Bearer " + valid, wantStatus: http.StatusOK, wantActor: "user-2"},
		{name: "ExpiredToken", secret: secret, header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "WrongSecret", secret: secret, header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
		{name: "BadScheme", secret: secret, header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "AuthDisabledIgnoresToken", secret: "", header: "Bearer " + forged, wantStatus: http.StatusOK, wantActor: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.Authenticate(tt.secret, fallback)(http.HandlerFunc(echoActor))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantActor != "" {
				assert.Equal(t, tt.wantActor, w.Body.String())
			}
		})
	}
}

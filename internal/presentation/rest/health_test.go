package rest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosnap/ecosnap/pkg/observability"
)

func TestHealthz(t *testing.T) {
	mux := http.NewServeMux()
	NewHealthHandler(func() bool { return false }, observability.Discard()).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "ecosnap", body.Service)
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		loaded     bool
		wantStatus int
		wantModel  string
	}{
		{"model loaded", true, http.StatusOK, "ok"},
		{"model missing", false, http.StatusServiceUnavailable, "not loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			NewHealthHandler(func() bool { return tt.loaded }, observability.Discard()).RegisterRoutes(mux)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body ReadinessResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantModel, body.Checks["model"])
		})
	}
}

func TestReadyz_LogsWhenNotReady(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	mux := http.NewServeMux()
	NewHealthHandler(func() bool { return false }, logger).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "readiness check failed", entry["msg"])
	assert.Equal(t, "not loaded", entry["model"])
}

func TestReadyz_QuietWhenReady(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	mux := http.NewServeMux()
	NewHealthHandler(func() bool { return true }, logger).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String())
}

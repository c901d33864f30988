package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLogged(t *testing.T, path string, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(StructuredLogger(logger))
	r.Get("/customers/{accountNumber}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestStructuredLogger(t *testing.T) {
	entry := serveLogged(t, "/customers/ACC123", http.StatusBadGateway)

	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "Served request", entry["msg"])
	assert.Equal(t, "http", entry["component"])

	request, ok := entry["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/customers/{accountNumber}", request["route"])
	assert.Equal(t, "/customers/ACC123", request["path"])
	assert.NotEmpty(t, request["request_id"])

	response, ok := entry["response"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(http.StatusBadGateway), response["status"])
}

func TestStructuredLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		level  string
		route  string
	}{
		{"ok", "/customers/ACC123", http.StatusOK, "INFO", "/customers/{accountNumber}"},
		{"client error", "/customers/ACC999", http.StatusNotFound, "WARN", "/customers/{accountNumber}"},
		{"unmatched", "/nowhere", http.StatusNotFound, "WARN", unmatchedRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := serveLogged(t, tt.path, tt.status)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.route, entry["request"].(map[string]any)["route"])
		})
	}
}

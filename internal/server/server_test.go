package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/internal/health"
	"github.com/Proton-105/telegram-payments/internal/server"
	"github.com/Proton-105/telegram-payments/pkg/logger"
)

type staticChecker map[string]string

func (c staticChecker) Check(context.Context) map[string]string { return c }

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	rec := serve(t, server.NewRouter(nil, nil), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(logger.CorrelationIDHeader))
	assert.Equal(t, map[string]any{"status": "ok"}, decodeBody(t, rec))
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name    string
		checker server.ReadinessChecker
		code    int
		status  string
	}{
		{name: "no checker", checker: nil, code: http.StatusOK, status: "ok"},
		{name: "ready", checker: staticChecker{"telegram": health.StatusOK}, code: http.StatusOK, status: "ok"},
		{name: "degraded", checker: staticChecker{"telegram": health.StatusOK, "catalog": "catalog is empty"}, code: http.StatusServiceUnavailable, status: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, server.NewRouter(nil, tt.checker), http.MethodGet, "/readyz")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.status, decodeBody(t, rec)["status"])
		})
	}
}

func TestReadyzListsComponents(t *testing.T) {
	checker := staticChecker{"catalog": "catalog is empty"}
	body := decodeBody(t, serve(t, server.NewRouter(nil, checker), http.MethodGet, "/readyz"))

	assert.Equal(t, map[string]any{"catalog": "catalog is empty"}, body["components"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := server.NewRouter(nil, nil)

	rec := serve(t, router, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	assert.Equal(t, http.StatusMethodNotAllowed, serve(t, router, http.MethodPost, "/metrics").Code)
}

func TestNewSetsTimeouts(t *testing.T) {
	srv := server.New("127.0.0.1:9090", nil, nil)

	assert.Equal(t, "127.0.0.1:9090", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Handler)
}

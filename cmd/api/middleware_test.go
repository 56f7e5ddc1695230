package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	app := newTestApplication(t)
	app.config.rateLimit.enabled = true
	app.config.rateLimit.globalRateLimit = 100
	app.config.rateLimit.perClientRateLimit = 1
	handler := app.routes()

	rr := serve(t, handler, http.MethodGet, "/v1/healthcheck", "", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, handler, http.MethodGet, "/v1/healthcheck", "", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// another client still has its own budget
	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestEnableCORS(t *testing.T) {
	app := newTestApplication(t)
	app.config.cors.trustedOrigins = []string{"https://cinema.example.com"}
	handler := app.routes()

	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		allowOrigin string
	}{
		{name: "Trusted preflight", method: http.MethodOptions, origin: "https://cinema.example.com", preflight: true, wantStatus: http.StatusOK, allowOrigin: "https://cinema.example.com"},
		{name: "Trusted simple request", method: http.MethodGet, origin: "https://cinema.example.com", wantStatus: http.StatusOK, allowOrigin: "https://cinema.example.com"},
		{name: "Untrusted origin", method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/healthcheck", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.allowOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			if tc.preflight {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	app := newTestApplication(t)
	handler := app.PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := serve(t, handler, http.MethodGet, "/", "", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
}

func TestHealthcheckAndDocs(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()

	rr := serve(t, handler, http.MethodGet, "/v1/healthcheck", "", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	health := decode[map[string]map[string]string](t, rr)["health"]
	assert.Equal(t, "available", health["status"])
	assert.Equal(t, "ok", health["database"])
	assert.Equal(t, "testing", health["environment"])
	assert.Equal(t, Version, health["version"])

	rr = serve(t, handler, http.MethodGet, "/v1/swagger.json", "", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/movies")

	rr = serve(t, handler, http.MethodGet, "/v1/nowhere", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, handler, http.MethodPut, "/v1/healthcheck", "", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealthcheckDatabaseDown(t *testing.T) {
	app, db := newTestApplicationWithDB(t)
	handler := app.routes()
	require.NoError(t, db.Close())

	rr := serve(t, handler, http.MethodGet, "/v1/healthcheck", "", nil, "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	health := decode[map[string]map[string]string](t, rr)["health"]
	assert.Equal(t, "unavailable", health["status"])
	assert.Equal(t, "unreachable", health["database"])
}

// file: internal/server/server_test.go
// version: 1.1.0
// guid: b7e4a1c9-2d6f-4083-9a5b-7c1e4f8a0d3b

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/storefront/internal/auth"
	"github.com/shopkit/storefront/internal/cache"
	"github.com/shopkit/storefront/internal/config"
	"github.com/shopkit/storefront/internal/store"
)

const (
	testToken = "good-token"
	testUID   = "user-1"
	testEmail = "user@example.com"
)

// setupTestServer creates a server backed by an in-memory store and a
// verifier that accepts testToken only.
func setupTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	verifier := &auth.MockVerifier{
		VerifyFunc: func(ctx context.Context, token string) (*auth.Identity, error) {
			switch token {
			case testToken:
				return &auth.Identity{UID: testUID, Email: testEmail, EmailVerified: true}, nil
			case "expired-token":
				return nil, auth.ErrExpiredToken
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}

	cfg := config.Config{
		Environment: "test",
		CORSOrigins: []string{"http://localhost:3000"},
		CacheTTL:    60 * time.Second,
	}

	srv := NewServer(cfg, st, verifier, cache.New(cfg.CacheTTL))
	return srv, st
}

func seedProduct(t *testing.T, st store.Store, id, name string, price float64, stock int) {
	t.Helper()
	_, err := st.AddDocument("products", store.Document{
		"name":        name,
		"description": name + " description",
		"price":       price,
		"image_url":   "https://img/" + id + ".png",
		"stock":       stock,
		"category":    "test",
	}, id)
	require.NoError(t, err)
}

// doRequest performs an HTTP request against the test router. An empty token
// leaves the Authorization header unset.
func doRequest(srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealthCheck(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "storefront-backend", body["service"])
	assert.Equal(t, "test", body["environment"])
}

func TestReadinessCheck(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "ready", body["status"])
}

func TestReadinessCheckStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mock := &store.MockStore{
		DocumentExistsFunc: func(collection, id string) (bool, error) {
			return false, assert.AnError
		},
	}
	cfg := config.Config{Environment: "test", CacheTTL: 60 * time.Second}
	srv := NewServer(cfg, mock, &auth.MockVerifier{}, cache.New(cfg.CacheTTL))

	w := doRequest(srv, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRootEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, Version, body["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCORSAllowedOrigin(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/cart/add", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogLevelRank(t *testing.T) {
	assert.Equal(t, 0, logLevelRank("debug"))
	assert.Equal(t, 1, logLevelRank("INFO"))
	assert.Equal(t, 2, logLevelRank("Warn"))
	assert.Equal(t, 3, logLevelRank("ERROR"))
	assert.Equal(t, 1, logLevelRank("bogus"))
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv, _ := setupTestServer(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/auth/profile"},
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart/add"},
		{http.MethodPost, "/cart/remove"},
		{http.MethodPost, "/cart/update"},
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/orders"},
	}

	for _, route := range protected {
		w := doRequest(srv, route.method, route.path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

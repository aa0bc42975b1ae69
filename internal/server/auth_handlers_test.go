// file: internal/server/auth_handlers_test.go
// version: 1.0.0
// guid: e1a7c3f9-5b2d-4860-9f4e-2c8b5a1d7e0f

package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/storefront/internal/models"
)

func TestGetProfileBeforeCreate(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/auth/me", testToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestUpsertProfileCreateThenUpdate(t *testing.T) {
	srv, st := setupTestServer(t)

	w := doRequest(srv, http.MethodPost, "/auth/profile", testToken, models.UserProfile{
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		MobileNumber: "5551234567",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created map[string]any
	decodeBody(t, w, &created)
	assert.Equal(t, "Profile created successfully", created["message"])
	assert.Equal(t, testUID, created["uid"])

	doc, err := st.GetDocument("users", testUID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc["created_at"])

	w = doRequest(srv, http.MethodPost, "/auth/profile", testToken, models.UserProfile{
		Firstname:    "Ada",
		Lastname:     "King",
		MobileNumber: "5551234567",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated map[string]any
	decodeBody(t, w, &updated)
	assert.Equal(t, "Profile updated successfully", updated["message"])

	doc, err = st.GetDocument("users", testUID)
	require.NoError(t, err)
	assert.Equal(t, "King", doc["lastname"])
	// Merge update keeps the original creation timestamp.
	assert.NotEmpty(t, doc["created_at"])
}

func TestGetProfileAfterCreate(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodPost, "/auth/profile", testToken, models.UserProfile{
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		MobileNumber: "5551234567",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(srv, http.MethodGet, "/auth/me", testToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.UserResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, testUID, resp.UID)
	assert.Equal(t, testEmail, resp.Email)
	assert.Equal(t, "Ada", resp.Firstname)
	assert.Equal(t, "Lovelace", resp.Lastname)
}

func TestUpsertProfileValidation(t *testing.T) {
	srv, _ := setupTestServer(t)

	// Missing lastname and too-short mobile number.
	w := doRequest(srv, http.MethodPost, "/auth/profile", testToken, map[string]any{
		"firstname":    "Ada",
		"mobilenumber": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/auth/me", "expired-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "token expired", body["error"])
}

func TestAuthInvalidToken(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := doRequest(srv, http.MethodGet, "/auth/me", "bogus", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "invalid token", body["error"])
}

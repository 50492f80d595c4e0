package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/domain"
	"github.com/bookspace/bookspace-server/internal/service"
)

func TestRegister_Success(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	rec := doRequest(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "reader@example.com",
		"password": "SecurePassword123!",
		"name":     "Reader",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope[service.AuthResponse](t, rec)
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "reader@example.com", envelope.Data.User.Email)
	assert.Positive(t, envelope.Data.ExpiresIn)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	registerUser(t, server, "reader@example.com")

	rec := doRequest(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "reader@example.com",
		"password": "SecurePassword123!",
		"name":     "Other Reader",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"password": "SecurePassword123!", "name": "R"}},
		{"short password", map[string]any{"email": "a@b.com", "password": "short", "name": "R"}},
		{"missing name", map[string]any{"email": "a@b.com", "password": "SecurePassword123!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, server, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	_, userID := registerUser(t, server, "reader@example.com")

	rec := doRequest(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "reader@example.com",
		"password": "SecurePassword123!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope[service.AuthResponse](t, rec)
	assert.Equal(t, userID, envelope.Data.User.ID)
	assert.NotEmpty(t, envelope.Data.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	registerUser(t, server, "reader@example.com")

	rec := doRequest(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "reader@example.com",
		"password": "WrongPassword123!",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCurrentUser(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	token, userID := registerUser(t, server, "reader@example.com")

	rec := doRequest(t, server, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope[*domain.User](t, rec)
	assert.Equal(t, userID, envelope.Data.ID)
	assert.Equal(t, "reader@example.com", envelope.Data.Email)
}

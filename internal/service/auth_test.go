package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/auth"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/service"
	"github.com/bookspace/bookspace-server/internal/store"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func setupAuthService(t *testing.T) (*service.AuthService, *store.Store, func()) {
	t.Helper()

	s, cleanup := setupTestStore(t)

	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	return service.NewAuthService(s, tokens, nil), s, cleanup
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()

	resp, err := svc.Register(ctx, service.RegisterRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
		Name:     "Reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "reader@example.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash) // never stored in plain responses

	// Token resolves back to the user.
	claims, err := svc.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// Login with the same credentials.
	loginResp, err := svc.Login(ctx, service.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, loginResp.User.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()

	req := service.RegisterRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
		Name:     "Reader",
	}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, cleanup := setupAuthService(t)
	defer cleanup()

	tests := []struct {
		name string
		req  service.RegisterRequest
	}{
		{"missing email", service.RegisterRequest{Password: "long enough pass", Name: "R"}},
		{"bad email", service.RegisterRequest{Email: "not-an-email", Password: "long enough pass", Name: "R"}},
		{"short password", service.RegisterRequest{Email: "a@b.com", Password: "short", Name: "R"}},
		{"missing name", service.RegisterRequest{Email: "a@b.com", Password: "long enough pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
		Name:     "Reader",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, service.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong password here",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_UnknownEmailDoesNotLeak(t *testing.T) {
	svc, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := svc.Login(context.Background(), service.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})
	require.Error(t, err)

	// Same error as a wrong password, so callers can't probe for accounts.
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

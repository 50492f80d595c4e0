package auth_test

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/auth"
	"github.com/bookspace/bookspace-server/internal/domain"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := auth.NewTokenService("too-short", 15*time.Minute)
	require.Error(t, err)

	// Right length, not hex.
	notHex := strings.Repeat("z", 64)
	_, err = auth.NewTokenService(notHex, 15*time.Minute)
	require.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := auth.NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	user := &domain.User{
		Record: domain.Record{ID: "user-abc"},
		Email:  "reader@example.com",
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "user-abc", claims.Subject)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc, err := auth.NewTokenService(testKeyHex, -1*time.Minute)
	require.NoError(t, err)

	user := &domain.User{Record: domain.Record{ID: "user-abc"}, Email: "reader@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	require.Error(t, err)
}

func TestTokenService_RejectsForeignKey(t *testing.T) {
	svc, err := auth.NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	otherKey := hex.EncodeToString([]byte(strings.Repeat("x", 32)))
	other, err := auth.NewTokenService(otherKey, 15*time.Minute)
	require.NoError(t, err)

	user := &domain.User{Record: domain.Record{ID: "user-abc"}, Email: "reader@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	require.Error(t, err)
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := auth.VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, err := auth.HashPassword("")
	require.Error(t, err)
}

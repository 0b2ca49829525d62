package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "admin", "Admin", []string{"manage-stock"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, []string{"manage-stock"}, claims.Permissions)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := m.GenerateAccessToken(userID, "user", "User", nil)
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestExpiredAndForeignTokens(t *testing.T) {
	expired := NewJWTManager("test-secret", -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken(uuid.New(), "user", "User", nil)
	require.NoError(t, err)
	_, err = expired.ValidateAccessToken(token)
	assert.Error(t, err)

	other := NewJWTManager("other-secret", time.Hour, time.Hour)
	token, err = other.GenerateAccessToken(uuid.New(), "user", "User", nil)
	require.NoError(t, err)
	_, err = NewJWTManager("test-secret", time.Hour, time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("admin124", hash))
}

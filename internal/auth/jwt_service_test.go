package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	token, tokenID, err := service.GenerateToken(1, 10, "jdoe@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, uint(10), claims.EmployeeID)
	assert.Equal(t, "jdoe@example.com", claims.Email)
	assert.Equal(t, tokenID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", time.Hour).GenerateToken(1, 10, "jdoe@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	token, _, err := NewJWTService("test-secret", -time.Minute).GenerateToken(1, 10, "jdoe@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", -time.Minute).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_TokenIDsAreUnique(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	_, first, err := service.GenerateToken(1, 10, "jdoe@example.com")
	require.NoError(t, err)
	_, second, err := service.GenerateToken(1, 10, "jdoe@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

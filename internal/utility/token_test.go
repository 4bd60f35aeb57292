package utility

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestCreateAndParseToken(t *testing.T) {
	token, err := CreateToken(testSecret, "user-123", "user", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix(), "token phải còn hạn")
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, "user-123", "user", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("sai-secret", token)
	assert.Error(t, err, "token ký bằng secret khác phải bị từ chối")
}

func TestParseTokenExpired(t *testing.T) {
	token, err := CreateToken(testSecret, "user-123", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.Error(t, err)

	// Caller phân biệt token hết hạn qua bitmask của jwt-go
	validationErr, ok := err.(*jwt.ValidationError)
	require.True(t, ok)
	assert.NotZero(t, validationErr.Errors&jwt.ValidationErrorExpired)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "khong.phai.jwt")
	assert.Error(t, err)
}

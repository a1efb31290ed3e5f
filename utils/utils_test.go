package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	key := []byte("secret")

	token, err := GenerateJWT(key, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(key, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.Admin)
}

func TestValidateJWTRejects(t *testing.T) {
	key := []byte("secret")

	expired, err := GenerateJWT(key, "admin", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWT(key, expired)
	assert.EqualError(t, err, "token has expired")

	valid, err := GenerateJWT(key, "admin", time.Hour)
	require.NoError(t, err)
	_, err = ValidateJWT([]byte("other"), valid)
	assert.EqualError(t, err, "invalid token signature")

	_, err = ValidateJWT(key, "not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

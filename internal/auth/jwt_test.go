package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("user-1", "client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTTokenIDsAreUnique(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	first, err := m.GenerateAccessToken("user-1", "client")
	require.NoError(t, err)
	second, err := m.GenerateAccessToken("user-1", "client")
	require.NoError(t, err)

	c1, err := m.ParseAndValidate(first)
	require.NoError(t, err)
	c2, err := m.ParseAndValidate(second)
	require.NoError(t, err)

	// The blacklist revokes individual tokens by ID, so every issued
	// token needs its own.
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("user-1", "client")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTManager("right-secret", time.Hour).GenerateAccessToken("user-1", "client")
	require.NoError(t, err)

	_, err = NewJWTManager("wrong-secret", time.Hour).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTGarbageToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.ParseAndValidate("not-a-token")
	assert.Error(t, err)
}

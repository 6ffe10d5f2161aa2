package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 7*24*time.Hour)

	token, exp, err := m.Generate("user-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	m1 := NewJWTManager("secret-a", time.Hour)
	m2 := NewJWTManager("secret-b", time.Hour)

	token, _, err := m1.Generate("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = m2.Parse(token)
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.Parse("not-a-token")
	assert.Error(t, err)
}

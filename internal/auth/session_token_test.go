package auth

import (
	"testing"
	"time"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSignerSign(t *testing.T) {
	signer := NewSessionSigner(testSecret)
	expires := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	signed, exp, err := signer.Sign(models.Session{ID: "sid-1", Email: "ana@example.com", ExpiresAt: expires})
	require.NoError(t, err)
	assert.Equal(t, expires, exp)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "sid-1", claims["sid"])
	assert.Equal(t, "ana@example.com", claims["uid"])
	assert.Equal(t, RoleClient, claims["role"])
}

func TestSessionSignerDefaultExpiry(t *testing.T) {
	signer := NewSessionSigner(testSecret)
	_, exp, err := signer.Sign(models.Session{ID: "sid-2", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)
}

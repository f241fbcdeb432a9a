package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)

	got, err := TokenExpiry(signedToken(t, exp))

	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_Expired(t *testing.T) {
	// Истекший токен все равно разбирается: подпись и сроки не проверяются
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)

	got, err := TokenExpiry(signedToken(t, exp))

	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_NoExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = TokenExpiry(token)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestTokenExpiry_Opaque(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

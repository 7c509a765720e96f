package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService("segredo-de-teste", time.Hour)

	tok, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("segredo-de-teste", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok, err := NewService("um-segredo", time.Hour).GenerateToken("user-123")
	require.NoError(t, err)

	_, err = NewService("outro-segredo", time.Hour).ValidateToken(tok)

	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := CustomClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewService("segredo", time.Hour).ValidateToken(tok)

	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewService("segredo", time.Hour).ValidateToken("nao.e.jwt")
	assert.Error(t, err)
}

func TestGenerateToken_EmptyUser(t *testing.T) {
	_, err := NewService("segredo", time.Hour).GenerateToken("")
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, expiresAt, err := GenerateAccessToken("user-1", "ADMIN", "inst-1", []string{"ROLE_ADMIN"})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "inst-1", claims.InstitutionID)
	assert.Equal(t, []string{"ROLE_ADMIN"}, claims.Authorities)
}

func TestAccessTokenTamperedSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, _, err := GenerateAccessToken("user-1", "USER", "inst-1", nil)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseAccessToken(tampered)
	assert.Error(t, err)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, _, err := GenerateAccessToken("user-1", "USER", "", nil)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ParseAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := AccessClaims{
		Role: "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenCarriesOnlySubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateRefreshToken("user-9")
	require.NoError(t, err)

	subject, err := ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", subject)

	// a refresh token must not be usable as an access token carrying a role
	claims, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
}

func TestTTLFromEnv(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "2h")
	assert.Equal(t, 2*time.Hour, AccessTokenTTL())

	t.Setenv("JWT_ACCESS_TOKEN_TTL", "not-a-duration")
	assert.Equal(t, defaultAccessTokenTTL, AccessTokenTTL())

	t.Setenv("JWT_REFRESH_TOKEN_TTL", "")
	assert.Equal(t, defaultRefreshTokenTTL, RefreshTokenTTL())
}

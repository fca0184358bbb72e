package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultAccessTokenTTL  = 24 * time.Hour
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me" // fallback for development
	}
	return []byte(secret)
}

func ttlFromEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func AccessTokenTTL() time.Duration {
	return ttlFromEnv("JWT_ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
}

func RefreshTokenTTL() time.Duration {
	return ttlFromEnv("JWT_REFRESH_TOKEN_TTL", defaultRefreshTokenTTL)
}

// AccessClaims is the self-contained access-token payload: subject id, role,
// tenant and the flat authority list. No server-side session backs it.
type AccessClaims struct {
	Role          string   `json:"role,omitempty"`
	InstitutionID string   `json:"institutionId,omitempty"`
	Authorities   []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs an HS256 access token. institutionID is empty for
// system admins.
func GenerateAccessToken(subjectID, role, institutionID string, authorities []string) (string, time.Time, error) {
	expiresAt := time.Now().Add(AccessTokenTTL())
	claims := AccessClaims{
		Role:          role,
		InstitutionID: institutionID,
		Authorities:   authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTSecret())
	return token, expiresAt, err
}

// GenerateRefreshToken signs a refresh token carrying only the subject id.
// Role, tenant and authorities are re-derived from the stored principal at
// refresh time so stale claims are never replayed forward.
func GenerateRefreshToken(subjectID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenTTL())),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTSecret())
}

// ParseAccessToken validates signature and expiry and returns the claims. Any
// failure class (bad signature, malformed, expired, wrong algorithm) comes back
// as an error; callers treat all of them as "no authentication".
func ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return getJWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh token and returns the subject id.
func ParseRefreshToken(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", fmt.Errorf("empty token string")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return getJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("token parsing failed: %v", err)
	}
	return claims.Subject, nil
}

package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"welfare-center-api/src/database"
)

const (
	loginCodeTTL      = 10 * time.Minute
	loginCodeAttempts = 20
)

func loginCodeKey(code string) string   { return "logincode:code:" + code }
func loginCodeUserKey(id string) string { return "logincode:user:" + id }

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}

// IssueLoginCode creates a one-shot 4-digit code for a member and stores the
// code<->user mapping in Redis with a short TTL. Issuing a new code invalidates
// the previous one for the same member.
func IssueLoginCode(ctx context.Context, userID string) (string, error) {
	if database.RedisClient == nil {
		return "", fmt.Errorf("temporary login codes require Redis")
	}

	// Drop a still-live code for this member before issuing a new one.
	if prev, err := database.RedisClient.Get(ctx, loginCodeUserKey(userID)).Result(); err == nil && prev != "" {
		database.RedisClient.Del(ctx, loginCodeKey(prev))
	}

	for i := 0; i < loginCodeAttempts; i++ {
		code, err := randomDigits(4)
		if err != nil {
			return "", err
		}

		ok, err := database.RedisClient.SetNX(ctx, loginCodeKey(code), userID, loginCodeTTL).Result()
		if err != nil {
			return "", err
		}
		if !ok {
			continue // code already in use by another member
		}

		if err := database.RedisClient.Set(ctx, loginCodeUserKey(userID), code, loginCodeTTL).Err(); err != nil {
			database.RedisClient.Del(ctx, loginCodeKey(code))
			return "", err
		}
		return code, nil
	}
	return "", fmt.Errorf("could not allocate a unique login code")
}

// ConsumeLoginCode resolves a code to its member id and deletes both mappings.
// A code authenticates exactly once.
func ConsumeLoginCode(ctx context.Context, code string) (string, error) {
	if database.RedisClient == nil {
		return "", fmt.Errorf("temporary login codes require Redis")
	}

	userID, err := database.RedisClient.Get(ctx, loginCodeKey(code)).Result()
	if err != nil || userID == "" {
		return "", fmt.Errorf("login code not found or expired")
	}

	database.RedisClient.Del(ctx, loginCodeKey(code), loginCodeUserKey(userID))
	return userID, nil
}

package utils

import (
	"context"
	"fmt"

	"welfare-center-api/src/database"
)

func refreshKey(subjectID string) string { return "refresh:" + subjectID }

// StoreRefreshToken records the latest refresh token for a subject. One live
// refresh token per account: a new login displaces the previous session.
func StoreRefreshToken(ctx context.Context, subjectID, token string) error {
	if database.RedisClient == nil {
		return nil // stateless fallback, signature check still applies
	}
	return database.RedisClient.Set(ctx, refreshKey(subjectID), token, RefreshTokenTTL()).Err()
}

// ValidateRefreshToken checks the presented token against the stored one.
func ValidateRefreshToken(ctx context.Context, subjectID, token string) error {
	if database.RedisClient == nil {
		return nil
	}

	stored, err := database.RedisClient.Get(ctx, refreshKey(subjectID)).Result()
	if err != nil || stored != token {
		return fmt.Errorf("refresh token not recognized")
	}
	return nil
}

// DeleteRefreshToken revokes the stored token on logout.
func DeleteRefreshToken(ctx context.Context, subjectID string) error {
	if database.RedisClient == nil {
		return nil
	}
	return database.RedisClient.Del(ctx, refreshKey(subjectID)).Err()
}

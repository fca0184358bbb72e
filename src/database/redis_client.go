package database

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	RedisClient *redis.Client
	RedisURI    string
)

// InitRedis connects to Redis when REDIS_URI is set. Without Redis the server
// still runs: temporary login codes and the refresh-token allowlist degrade to
// no-ops the way callers already handle.
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI")
	if RedisURI == "" {
		logrus.Warn("REDIS_URI not set, Redis features disabled")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     RedisURI,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := RedisClient.Ping(context.Background()).Result(); err != nil {
		logrus.WithError(err).Warn("Redis ping failed, Redis features disabled")
		RedisClient = nil
		return
	}
	logrus.Info("Redis connected")
}

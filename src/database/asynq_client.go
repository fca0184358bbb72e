package database

import (
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

var AsynqClient *asynq.Client

// InitAsynq initializes the task client only when Redis is available.
func InitAsynq() {
	if RedisClient == nil || RedisURI == "" {
		logrus.Warn("Redis not available, Asynq client not initialized")
		return
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: RedisURI})
	logrus.Info("Asynq client initialized")
}

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"welfare-center-api/src/database"
)

// HandleUploadNotifyTask stamps the upload as notified. Delivery to an external
// channel (push, SMS) hangs off this hook when one is configured.
func HandleUploadNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload UploadNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal upload notify payload: %w", err)
	}

	uploadOID, err := primitive.ObjectIDFromHex(payload.UploadID)
	if err != nil {
		return fmt.Errorf("bad upload id %q: %w", payload.UploadID, err)
	}

	result, err := database.UploadCollection.UpdateOne(ctx,
		bson.M{"_id": uploadOID},
		bson.M{"$set": bson.M{"notifiedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("mark upload notified: %w", err)
	}
	if result.MatchedCount == 0 {
		// upload vanished between enqueue and processing; nothing to retry
		logrus.WithField("uploadId", payload.UploadID).Warn("upload not found for notification")
		return nil
	}

	logrus.WithField("uploadId", payload.UploadID).Info("upload notification processed")
	return nil
}

// RunWorker starts the asynq server and blocks. It requires Redis.
func RunWorker() error {
	if database.RedisURI == "" {
		return fmt.Errorf("worker mode requires REDIS_URI")
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifyUpload, HandleUploadNotifyTask)

	logrus.Info("asynq worker started")
	return srv.Run(mux)
}

package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeNotifyUpload = "upload:notify"

type UploadNotifyPayload struct {
	UploadID string `json:"uploadId"`
}

// NewUploadNotifyTask builds the task that tells institution staff a member
// submitted a new upload.
func NewUploadNotifyTask(uploadID string) (*asynq.Task, error) {
	payload, err := json.Marshal(UploadNotifyPayload{UploadID: uploadID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyUpload, payload, asynq.MaxRetry(3)), nil
}

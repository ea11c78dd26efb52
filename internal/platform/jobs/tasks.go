// Package jobs はasynqによるバックグラウンドジョブを提供します。
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	QueueDefault = "default"

	// TaskAuthPurge は期限切れのマジックリンクとセッションを削除します。
	TaskAuthPurge = "auth:purge"
)

// PurgePayload is the payload of TaskAuthPurge.
type PurgePayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewPurgeTask builds a TaskAuthPurge task.
func NewPurgeTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(PurgePayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuthPurge, payload), nil
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"riskwizard_backend/internal/feature/auth/usecase"
)

// Purger deletes expired auth data.
type Purger interface {
	Purge(ctx context.Context) (usecase.PurgeResult, error)
}

// PurgeJob handles TaskAuthPurge.
type PurgeJob struct {
	purger Purger
	logger *slog.Logger
}

// NewPurgeJob wires dependencies for the purge handler.
func NewPurgeJob(purger Purger, logger *slog.Logger) *PurgeJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurgeJob{purger: purger, logger: logger}
}

// Handle processes purge tasks. Malformed payloads are not retried.
func (j *PurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.purger == nil {
		return errors.New("auth purge: handler not configured")
	}

	var payload PurgePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("auth purge: %v: %w", err, asynq.SkipRetry)
		}
	}

	res, err := j.purger.Purge(ctx)
	if err != nil {
		j.logger.Error("auth purge failed", slog.String("reason", payload.Reason), slog.Any("error", err))
		return err
	}
	j.logger.Info("auth purge done",
		slog.String("reason", payload.Reason),
		slog.Int64("magic_links", res.MagicLinks),
		slog.Int64("sessions", res.Sessions),
	)
	return nil
}

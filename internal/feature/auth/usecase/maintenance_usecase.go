package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PurgeResult は削除件数です。
type PurgeResult struct {
	MagicLinks int64
	Sessions   int64
}

// MaintenanceUsecase は期限切れデータの定期削除を担当します。
type MaintenanceUsecase struct {
	links     MagicLinkRepository
	sessions  SessionRepository
	retention time.Duration
	now       func() time.Time
}

// NewMaintenanceUsecase creates a MaintenanceUsecase. Tokens older than retention are purged.
func NewMaintenanceUsecase(links MagicLinkRepository, sessions SessionRepository, retention time.Duration) *MaintenanceUsecase {
	return &MaintenanceUsecase{
		links:     links,
		sessions:  sessions,
		retention: retention,
		now:       time.Now,
	}
}

// Purge deletes magic-link tokens issued before now-retention and expired sessions.
func (u *MaintenanceUsecase) Purge(ctx context.Context) (PurgeResult, error) {
	var res PurgeResult

	cutoff := u.now().UTC().Add(-u.retention)
	n, err := u.links.DeleteExpired(ctx, cutoff)
	if err != nil {
		return res, fmt.Errorf("failed to purge magic links: %w", err)
	}
	res.MagicLinks = n

	n, err = u.sessions.DeleteExpired(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to purge sessions: %w", err)
	}
	res.Sessions = n

	slog.Info("purged expired auth data", "magic_links", res.MagicLinks, "sessions", res.Sessions, "cutoff", cutoff)
	return res, nil
}

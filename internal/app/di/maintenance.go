package di

import (
	"time"

	"gorm.io/gorm"

	authadapters "riskwizard_backend/internal/feature/auth/adapters"
	"riskwizard_backend/internal/feature/auth/usecase"
)

// NewMaintenanceUsecase はパージ対象をSQLのトークン表とセッション表に固定します。
// Redisのセッションは TTL で消えるため、サーバーがRedisなしで動いた期間のSQL行だけが残ります。
func NewMaintenanceUsecase(db *gorm.DB, retention time.Duration) *usecase.MaintenanceUsecase {
	return usecase.NewMaintenanceUsecase(
		authadapters.NewMagicLinkGorm(db),
		authadapters.NewSessionGorm(db),
		retention,
	)
}

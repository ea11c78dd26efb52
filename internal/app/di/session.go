// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "riskwizard_backend/internal/feature/auth/adapters"
	"riskwizard_backend/internal/feature/auth/usecase"
	"riskwizard_backend/internal/platform/session"
)

// NewSessionRepository はリフレッシュトークンのセッション（失効リスト）の保存先を選びます。
// Redisに接続できればキー "session:<jti>" にTTL付きで保存し、
// 接続できなければ sessions テーブル（Postgres/SQLite）に保存します。
// テーブル側の期限切れ行は cmd/worker の auth:purge が削除します。
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionGorm(db)
}

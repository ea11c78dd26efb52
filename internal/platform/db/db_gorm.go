// Package db はGORM接続の確立とマイグレーションを提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authadapters "riskwizard_backend/internal/feature/auth/adapters"
	"riskwizard_backend/internal/feature/auth/domain/entity"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	retryInterval = time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver        string
	DSN           string // postgres
	SQLitePath    string // sqlite
	RunMigrations bool
	Timeout       time.Duration
}

// Opener opens a gorm.DB for a DSN. Swappable in tests.
type Opener func(dsn string) (*gorm.DB, error)

// gormConfig は全ドライバー共通の設定です。
// TranslateError によりユニーク制約違反は gorm.ErrDuplicatedKey に変換されます。
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// OpenerFor returns the opener and DSN for the configured driver.
func OpenerFor(cfg Config) (Opener, string, error) {
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, "", errors.New("DB_DSN is required for postgres")
		}
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormConfig())
		}, cfg.DSN, nil
	case DriverSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			path = "riskwizard.db"
		}
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gormConfig())
		}, path, nil
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// OpenDB connects to the configured database and optionally runs migrations.
func OpenDB(cfg Config) (*gorm.DB, error) {
	opener, dsn, err := OpenerFor(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	db, err := ConnectWithRetry(dsn, timeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Driver != DriverPostgres {
		// SQLite は書き込みが直列化されるため接続を1本に絞る（:memory: の共有も兼ねる）
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// ConnectWithRetry は接続に成功するかタイムアウトするまで再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Migrate creates or updates the auth tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&authadapters.MagicLinkModel{},
		&authadapters.SessionModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

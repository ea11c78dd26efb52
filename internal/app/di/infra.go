package di

import (
	"time"

	"riskwizard_backend/internal/app/config"
	"riskwizard_backend/internal/platform/db"
	infraredis "riskwizard_backend/internal/platform/redis"
)

const dbConnectTimeout = 30 * time.Second

// NewDBConfig maps application config to the database layer.
func NewDBConfig(cfg *config.Config) db.Config {
	return db.Config{
		Driver:        cfg.DBDriver,
		DSN:           cfg.DBDSN,
		SQLitePath:    cfg.SQLitePath,
		RunMigrations: cfg.RunMigrations,
		Timeout:       dbConnectTimeout,
	}
}

// NewRedisConfig maps application config to the Redis client.
func NewRedisConfig(cfg *config.Config) infraredis.Config {
	return infraredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	}
}

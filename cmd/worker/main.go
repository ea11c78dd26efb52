package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"riskwizard_backend/internal/app/config"
	"riskwizard_backend/internal/app/di"
	infradb "riskwizard_backend/internal/platform/db"
	"riskwizard_backend/internal/platform/jobs"
	"riskwizard_backend/internal/platform/logger"
	infraredis "riskwizard_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat, cfg.Debug)
	slog.SetDefault(log)

	redisCfg := di.NewRedisConfig(cfg)
	if !redisCfg.Enabled() {
		slog.Error("REDIS_HOST is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := infradb.OpenDB(di.NewDBConfig(cfg))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to access database handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedisClient(ctx, redisCfg)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Redis のセッションは TTL で失効するため、パージは SQL 側だけを対象にする
	purge := jobs.NewPurgeJob(di.NewMaintenanceUsecase(db, cfg.MagicLinkRetention), log)

	task, err := jobs.NewPurgeTask("scheduled")
	if err != nil {
		slog.Error("failed to build purge task", "error", err)
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     redisCfg.Addr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		Logger:   log,
		Handlers: []jobs.TaskHandler{{Type: jobs.TaskAuthPurge, Handler: purge.Handle}},
		Cron: []jobs.CronRegistration{{
			Spec:    cfg.PurgeCron,
			Task:    task,
			Options: []asynq.Option{asynq.Queue(jobs.QueueDefault), asynq.Timeout(5 * time.Minute)},
		}},
	})
	if err != nil {
		slog.Error("failed to configure worker", "error", err)
		os.Exit(1)
	}

	slog.Info("worker started", "purge_cron", cfg.PurgeCron)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"riskwizard_backend/internal/app/config"
	"riskwizard_backend/internal/app/di"
	"riskwizard_backend/internal/app/router"
	authadapters "riskwizard_backend/internal/feature/auth/adapters"
	authhandler "riskwizard_backend/internal/feature/auth/transport/handler"
	authusecase "riskwizard_backend/internal/feature/auth/usecase"
	"riskwizard_backend/internal/platform/cache"
	infradb "riskwizard_backend/internal/platform/db"
	platformhandler "riskwizard_backend/internal/platform/http/handler"
	jwtmw "riskwizard_backend/internal/platform/jwt"
	"riskwizard_backend/internal/platform/logger"
	infraredis "riskwizard_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.LogFormat, cfg.Debug))
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
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

	// Redis（任意）
	var rdb *redisv9.Client
	if redisCfg := di.NewRedisConfig(cfg); redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache; sessions fall back to the database.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("Failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := cache.NewCachingUserRepository(rdb, 5*time.Minute, authadapters.NewUserGorm(db), "users")
	linkRepo := authadapters.NewMagicLinkGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)

	mailer, err := di.NewMailer(cfg, slog.Default())
	if err != nil {
		slog.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	// Usecase
	signer := jwtmw.NewSigner(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	credentialUC := authusecase.NewCredentialUsecase(signer, sessionRepo)
	linkUC := authusecase.NewMagicLinkUsecase(userRepo, linkRepo, mailer, credentialUC, authusecase.MagicLinkConfig{
		ExpiryWindow: cfg.MagicLinkExpiry(),
		ConfirmURL:   cfg.MagicLinkConfirmURL,
		SiteName:     cfg.SiteName,
		AllowList:    authusecase.NewAllowList(cfg.MagicLinkAllowedEmails),
	})
	userUC := authusecase.NewUserUsecase(userRepo)

	// Handler
	cookies := authhandler.NewCookieConfig(cfg.CookieDomain, cfg.SecureCookies(), cfg.IsProduction(), cfg.AccessTTL(), cfg.RefreshTTL())
	authH := authhandler.NewAuthHandler(linkUC, credentialUC, userUC, cookies, cfg.FrontendURL)
	userH := authhandler.NewUserHandler(userUC)

	checks := []platformhandler.Check{{Name: "database", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	// ルータ生成
	r := router.NewRouter(router.Config{
		Production:           cfg.IsProduction(),
		AllowedOrigins:       cfg.AllowedOrigins(),
		RequestLinkRateLimit: cfg.RequestLinkRateLimit,
	}, authH, userH, signer, platformhandler.NewHealth(checks...))

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.AppAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

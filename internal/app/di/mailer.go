package di

import (
	"log/slog"
	"time"

	"riskwizard_backend/internal/app/config"
	"riskwizard_backend/internal/feature/auth/usecase"
	"riskwizard_backend/internal/platform/mail"
	"riskwizard_backend/internal/shared/ratelimiter"
)

// NewMailer はMAIL_BACKENDに応じたMailerを返します。
func NewMailer(cfg *config.Config, logger *slog.Logger) (usecase.Mailer, error) {
	if cfg.MailBackend != "smtp" {
		return mail.NewLogMailer(logger), nil
	}
	limiter := ratelimiter.NewRateLimiter(cfg.MailRatePerMinute, time.Minute)
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.DefaultFromEmail,
	}, limiter)
}

// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server and the worker.
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`
	AppAddr   string `envconfig:"APP_ADDR" default:":8080"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`

	DBDriver      string `envconfig:"DB_DRIVER" default:"sqlite" validate:"oneof=postgres sqlite"`
	DBDSN         string `envconfig:"DB_DSN" validate:"required_if=DBDriver postgres"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"riskwizard.db"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true" validate:"min=16"`
	// 分
	AccessTokenLifetime int `envconfig:"ACCESS_TOKEN_LIFETIME" default:"240" validate:"gt=0"`
	// 日
	RefreshTokenLifetime int `envconfig:"REFRESH_TOKEN_LIFETIME" default:"30" validate:"gt=0"`

	MagicLinkExpiryMinutes int           `envconfig:"MAGIC_LINK_EXPIRY_MINUTES" default:"5" validate:"gt=0"`
	MagicLinkConfirmURL    string        `envconfig:"MAGIC_LINK_CONFIRM_URL" default:"http://localhost:8080/api/auth/confirm" validate:"url"`
	MagicLinkAllowedEmails []string      `envconfig:"MAGIC_LINK_ALLOWED_EMAILS"`
	MagicLinkRetention     time.Duration `envconfig:"MAGIC_LINK_RETENTION" default:"168h" validate:"gt=0"`

	FrontendURL  string `envconfig:"FRONTEND_URL" default:"http://localhost:3000" validate:"url"`
	CookieDomain string `envconfig:"COOKIE_DOMAIN"`
	SiteName     string `envconfig:"SITE_NAME" default:"RiskWizard"`

	MailBackend       string `envconfig:"MAIL_BACKEND" default:"log" validate:"oneof=smtp log"`
	SMTPHost          string `envconfig:"SMTP_HOST" validate:"required_if=MailBackend smtp"`
	SMTPPort          int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername      string `envconfig:"SMTP_USERNAME"`
	SMTPPassword      string `envconfig:"SMTP_PASSWORD"`
	DefaultFromEmail  string `envconfig:"DEFAULT_FROM_EMAIL" default:"noreply@localhost" validate:"required"`
	MailRatePerMinute int    `envconfig:"MAIL_RATE_PER_MINUTE" default:"60" validate:"gte=0"`

	RequestLinkRateLimit int      `envconfig:"REQUEST_LINK_RATE_LIMIT" default:"5" validate:"gte=0"`
	CORSAllowedOrigins   []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	PurgeCron string `envconfig:"PURGE_CRON" default:"@every 1h" validate:"required"`
}

// Load reads an optional .env file, then environment variables, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// SecureCookies reports whether cookies carry the Secure attribute.
func (c *Config) SecureCookies() bool {
	return !c.Debug
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenLifetime) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenLifetime) * 24 * time.Hour
}

func (c *Config) MagicLinkExpiry() time.Duration {
	return time.Duration(c.MagicLinkExpiryMinutes) * time.Minute
}

// AllowedOrigins は CORS_ALLOWED_ORIGINS、未設定なら FRONTEND_URL のオリジンを返します。
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) > 0 {
		return out
	}
	u, err := url.Parse(c.FrontendURL)
	if err != nil || u.Host == "" {
		return []string{"http://localhost:3000"}
	}
	return []string{u.Scheme + "://" + u.Host}
}

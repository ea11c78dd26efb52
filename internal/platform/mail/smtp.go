// Package mail はマジックリンクメールの送信実装を提供します。
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"riskwizard_backend/internal/feature/auth/usecase"
	"riskwizard_backend/internal/shared/ratelimiter"
)

// SMTPConfig はSMTP送信設定です。
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sender is the part of *gomail.Client used by SMTPMailer.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTPMailer sends plain-text mail over SMTP. Sends are throttled by the limiter.
type SMTPMailer struct {
	client  sender
	from    string
	limiter ratelimiter.Limiter
}

var _ usecase.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates an SMTPMailer. Authentication is enabled only when a username is set.
func NewSMTPMailer(cfg SMTPConfig, limiter ratelimiter.Limiter) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("SMTP_HOST is required")
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return newSMTPMailer(client, cfg.From, limiter), nil
}

func newSMTPMailer(client sender, from string, limiter ratelimiter.Limiter) *SMTPMailer {
	return &SMTPMailer{client: client, from: from, limiter: limiter}
}

// Send builds and delivers a single message.
func (m *SMTPMailer) Send(ctx context.Context, msg usecase.MailMessage) error {
	out, err := buildMessage(m.from, msg)
	if err != nil {
		return err
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("mail rate limit: %w", err)
		}
	}

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		slog.Error("failed to send mail", "to", msg.To, "error", err)
		return fmt.Errorf("failed to send mail: %w", err)
	}
	slog.Info("mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func buildMessage(from string, msg usecase.MailMessage) (*gomail.Msg, error) {
	out := gomail.NewMsg()
	if err := out.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return out, nil
}

package mail

import (
	"context"
	"log/slog"

	"riskwizard_backend/internal/feature/auth/usecase"
)

// LogMailer writes mail to the log instead of sending it. For local development.
type LogMailer struct {
	logger *slog.Logger
}

var _ usecase.Mailer = (*LogMailer)(nil)

// NewLogMailer creates a LogMailer. A nil logger uses slog.Default().
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(ctx context.Context, msg usecase.MailMessage) error {
	m.logger.InfoContext(ctx, "outgoing mail",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

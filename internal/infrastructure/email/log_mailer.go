package email

import (
	"context"

	"github.com/renztrending/backend/internal/application/notification"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ notification.Mailer = (*LogMailer)(nil)

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger.Named("mail")}
}

func (m *LogMailer) Send(ctx context.Context, msg notification.Message) error {
	if len(msg.To) == 0 {
		return notification.ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.Info("Email suppressed",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("text_bytes", len(msg.Text)),
		zap.Int("html_bytes", len(msg.HTML)))
	return nil
}

// NewMailer returns an SMTP mailer when mail is enabled and a LogMailer otherwise
func NewMailer(cfg config.MailConfig, logger *zap.Logger) (notification.Mailer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Mail disabled, emails will be logged")
		return NewLogMailer(logger), nil
	}
	return NewSMTPMailer(cfg, logger)
}

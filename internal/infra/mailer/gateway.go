package mailer

import (
	"log/slog"

	"growthmarket/internal/config"
	"growthmarket/internal/notification"
)

// New は設定に応じて Gateway を選ぶ
func New(cfg config.Mail, logger *slog.Logger) notification.Gateway {
	if !cfg.Enabled() {
		logger.Warn("SMTP_HOST is not set; mails are only logged")
		return NewLogGateway(logger)
	}
	return NewSMTPGateway(cfg)
}

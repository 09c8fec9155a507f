package mailer

import (
	"context"
	"log/slog"

	"growthmarket/internal/notification"
)

// LogGateway は SMTP 未設定時に使う。送らずにログへ出すだけ。
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Send(ctx context.Context, msg notification.Message) notification.Result {
	g.logger.Info("mail (smtp disabled)", "to", msg.To, "subject", msg.Subject, "body_bytes", len(msg.HTMLBody))
	return notification.OK()
}

package mailer

import (
	"context"
	"fmt"

	"growthmarket/internal/config"
	"growthmarket/internal/notification"

	"gopkg.in/gomail.v2"
)

// SMTPGateway は gomail で HTML メールを送る
type SMTPGateway struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPGateway(cfg config.Mail) *SMTPGateway {
	return &SMTPGateway{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (g *SMTPGateway) Send(ctx context.Context, msg notification.Message) notification.Result {
	m := gomail.NewMessage()
	m.SetHeader("From", g.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	// gomail は ctx を受け取らないので、タイムアウトは select で待つ
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("smtp panic: %v", r)
			}
		}()
		done <- g.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return notification.Failed(fmt.Errorf("smtp send to %s: %w", msg.To, err))
		}
		return notification.OK()
	case <-ctx.Done():
		return notification.Failed(ctx.Err())
	}
}

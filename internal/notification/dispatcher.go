package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Dispatcher は通知を goroutine で1回だけ送る（リトライなし）。
// リクエストの ctx がキャンセルされても送信は続ける。
type Dispatcher struct {
	gateway Gateway
	logger  *slog.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

func NewDispatcher(gateway Gateway, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		gateway: gateway,
		logger:  logger.With("component", "notification"),
		timeout: timeout,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	if strings.TrimSpace(msg.To) == "" {
		d.logger.Debug("notification skipped: no recipient", "subject", msg.Subject)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notification panicked",
					"to", msg.To, "subject", msg.Subject,
					"error", fmt.Errorf("%w: %v", ErrNotificationFailure, r))
			}
		}()

		sendCtx := context.WithoutCancel(ctx)
		if d.timeout > 0 {
			var cancel context.CancelFunc
			sendCtx, cancel = context.WithTimeout(sendCtx, d.timeout)
			defer cancel()
		}

		res := d.gateway.Send(sendCtx, msg)
		if !res.Success {
			d.logger.Warn("notification failed",
				"to", msg.To, "subject", msg.Subject,
				"error", fmt.Errorf("%w: %v", ErrNotificationFailure, res.Err))
			return
		}
		d.logger.Info("notification sent", "to", msg.To, "subject", msg.Subject)
	}()
}

// Wait は送信中の通知がすべて終わるまで待つ（シャットダウン用）
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

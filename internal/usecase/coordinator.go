package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"growthmarket/internal/domain/model"
	"growthmarket/internal/notification"
	repo "growthmarket/internal/repository"
)

// Coordinator は Payment / Refund の変化を Order のステータスへ反映し、通知を出す。
// 反映はベストエフォート。主レコードの保存と同じトランザクションには入れない。
type Coordinator struct {
	orders       repo.OrderRepository
	refunds      repo.RefundRepository
	notifier     Notifier
	idGen        IDGenerator
	clock        Clock
	adminAddress string
	logger       *slog.Logger
}

func NewCoordinator(
	orders repo.OrderRepository,
	refunds repo.RefundRepository,
	notifier Notifier,
	idGen IDGenerator,
	clock Clock,
	adminAddress string,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		orders:       orders,
		refunds:      refunds,
		notifier:     notifier,
		idGen:        idGen,
		clock:        clock,
		adminAddress: strings.TrimSpace(adminAddress),
		logger:       logger,
	}
}

// 入金承認で In Progress に進めない状態
func skipsPaymentApproval(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusCompleted, model.OrderStatusCancelled, model.OrderStatusRefunded,
		model.OrderStatusFailed, model.OrderStatusInProgress:
		return true
	}
	return false
}

// 入金の証跡が登録された
func (c *Coordinator) ApplyPaymentCreated(ctx context.Context, p model.Payment) {
	//ステータスに関係なく Payment Pending に戻す
	if o, ok := c.loadOrder(ctx, p.OrderID, "payment created"); ok {
		c.setStatus(ctx, o, model.OrderStatusPaymentPending, "payment created")
	}

	c.notifier.Dispatch(ctx, notification.PaymentReceivedClient(p))
	if c.adminAddress != "" {
		c.notifier.Dispatch(ctx, notification.PaymentSubmittedAdmin(c.adminAddress, p))
	}
}

// 入金の審査結果が保存された
func (c *Coordinator) ApplyPaymentReviewed(ctx context.Context, p model.Payment) {
	if p.Status == model.ReviewStatusApproved {
		if o, ok := c.loadOrder(ctx, p.OrderID, "payment approved"); ok {
			if skipsPaymentApproval(o.Status) {
				c.logger.InfoContext(ctx, "order status left untouched",
					slog.String("order_id", o.ID),
					slog.String("status", string(o.Status)),
					slog.String("payment_id", p.ID),
				)
			} else {
				c.setStatus(ctx, o, model.OrderStatusInProgress, "payment approved")
			}
		}
	}
	//Rejected は Order を変えない

	c.notifier.Dispatch(ctx, notification.PaymentReviewedClient(p))
	if c.adminAddress != "" {
		c.notifier.Dispatch(ctx, notification.PaymentReviewedAdmin(c.adminAddress, p))
	}
}

// 返金リクエストを作成し、Order を Refund Pending にする。
// rf には依頼内容（UserID, ClientName, ClientEmail, Amount, Reason）だけ入っていればよい。
func (c *Coordinator) ApplyRefundRequested(ctx context.Context, o model.Order, rf model.Refund) (model.Refund, error) {
	if o.Status == model.OrderStatusRefunded {
		return model.Refund{}, NewHTTPError(http.StatusConflict, "order already refunded")
	}

	now := c.clock.Now()
	rf.ID = c.idGen.NewID()
	rf.OrderID = o.ID
	rf.Status = model.ReviewStatusPending
	rf.AdminRemarks = ""
	rf.CreatedAt = now
	rf.UpdatedAt = now

	created, err := c.refunds.Create(ctx, rf)
	if err != nil {
		c.logger.ErrorContext(ctx, "create refund failed", slog.String("order_id", o.ID), slog.Any("error", err))
		return model.Refund{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//ここで失敗しても返金リクエストは残す
	c.setStatus(ctx, o, model.OrderStatusRefundPending, "refund requested")

	c.notifier.Dispatch(ctx, notification.RefundRequestedClient(created))
	if c.adminAddress != "" {
		c.notifier.Dispatch(ctx, notification.RefundRequestedAdmin(c.adminAddress, created))
	}
	return created, nil
}

// 返金の審査結果を Order に反映する
func (c *Coordinator) ApplyRefundReviewed(ctx context.Context, rf model.Refund) error {
	var next model.OrderStatus
	switch rf.Status {
	case model.ReviewStatusApproved:
		next = model.OrderStatusRefunded
	case model.ReviewStatusRejected:
		next = model.OrderStatusRefundRejected
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if o, ok := c.loadOrder(ctx, rf.OrderID, "refund reviewed"); ok {
		c.setStatus(ctx, o, next, "refund reviewed")
	}

	c.notifier.Dispatch(ctx, notification.RefundReviewedClient(rf))
	return nil
}

// 見つからない・読めない場合はログだけ残して false
func (c *Coordinator) loadOrder(ctx context.Context, orderID string, cause string) (model.Order, bool) {
	o, err := c.orders.FindByID(ctx, orderID)
	if err == nil {
		return o, true
	}
	if errors.Is(err, repo.ErrNotFound) {
		c.logger.WarnContext(ctx, "referenced order is missing",
			slog.String("order_id", orderID),
			slog.String("cause", cause),
			slog.Any("error", ErrInconsistency),
		)
		return model.Order{}, false
	}
	c.logger.ErrorContext(ctx, "load order failed",
		slog.String("order_id", orderID),
		slog.String("cause", cause),
		slog.Any("error", err),
	)
	return model.Order{}, false
}

func (c *Coordinator) setStatus(ctx context.Context, o model.Order, next model.OrderStatus, cause string) {
	if _, err := c.orders.UpdateStatus(ctx, o.ID, next); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			err = ErrInconsistency
		}
		c.logger.ErrorContext(ctx, "order status update failed",
			slog.String("order_id", o.ID),
			slog.String("to", string(next)),
			slog.String("cause", cause),
			slog.Any("error", err),
		)
		return
	}
	c.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", o.ID),
		slog.String("from", string(o.Status)),
		slog.String("to", string(next)),
		slog.String("cause", cause),
	)
}

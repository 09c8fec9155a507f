package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"

	"gorm.io/datatypes"
)

// AdminOrderUsecase は管理者が注文を直接操作するユースケース。
// どの操作も監査ログと同じトランザクションで保存する。
type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, auditRepo: auditRepo, clock: clock}
}

type AdminOverrideStatusInput struct {
	Status string
	Reason string
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.OrderListFilter) (ListOutput[model.Order], error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	switch f.Sort {
	case "", repo.SortNewest, repo.SortOldest:
	default:
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.orders.List(ctx, f)
	if err != nil {
		return ListOutput[model.Order]{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ListOutput[model.Order]{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// ステータスの手動上書き。状態遷移ルールは通さないが、理由付きで監査ログに残す。
func (u *AdminOrderUsecase) OverrideStatus(ctx context.Context, actorID string, orderID string, in AdminOverrideStatusInput) (model.Order, error) {
	if strings.TrimSpace(actorID) == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := findOrderTx(ctx, r, orderID)
		if err != nil {
			return err
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			out = o
			return nil
		}

		updated, err := r.Orders().UpdateStatus(ctx, orderID, newStatus)
		if err != nil {
			return orderWriteError(err)
		}

		// 監査ログ（OVERRIDE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionOverrideOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			Before:       snapshot(map[string]any{"status": o.Status}),
			After:        snapshot(map[string]any{"status": updated.Status}),
			Reason:       reason,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = updated
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 注文内容の修正（status 以外）
func (u *AdminOrderUsecase) UpdateDetails(ctx context.Context, actorID string, orderID string, in repo.OrderDetailsUpdate) (model.Order, error) {
	if strings.TrimSpace(actorID) == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.IsEmpty() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "no fields to update")
	}
	if err := validateDetails(in); err != nil {
		return model.Order{}, err
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := findOrderTx(ctx, r, orderID)
		if err != nil {
			return err
		}

		after, err := r.Orders().UpdateDetails(ctx, orderID, in)
		if err != nil {
			return orderWriteError(err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			Before:       snapshot(before),
			After:        snapshot(after),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = after
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 注文の削除。Payment / Refund は残る（参照先のない状態になる）。
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorID string, orderID string) error {
	if strings.TrimSpace(actorID) == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := findOrderTx(ctx, r, orderID)
		if err != nil {
			return err
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return orderWriteError(err)
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			Before:       snapshot(before),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 監査ログの一覧
func (u *AdminOrderUsecase) AuditLogs(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid period")
	}
	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

func findOrderTx(ctx context.Context, r repo.TxRepos, orderID string) (model.Order, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

func orderWriteError(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

func validateDetails(in repo.OrderDetailsUpdate) error {
	if in.ClientName != nil && strings.TrimSpace(*in.ClientName) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid clientName")
	}
	if in.ClientEmail != nil && !validEmail(strings.TrimSpace(*in.ClientEmail)) {
		return NewHTTPError(http.StatusBadRequest, "invalid clientEmail")
	}
	if in.ClientPhone != nil && strings.TrimSpace(*in.ClientPhone) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid clientPhone")
	}
	if in.ProfileLink != nil && !validLink(strings.TrimSpace(*in.ProfileLink)) {
		return NewHTTPError(http.StatusBadRequest, "invalid profileLink")
	}
	if in.PostLink != nil && strings.TrimSpace(*in.PostLink) != "" && !validLink(strings.TrimSpace(*in.PostLink)) {
		return NewHTTPError(http.StatusBadRequest, "invalid postLink")
	}
	if in.RequiredFollowers != nil && *in.RequiredFollowers < 1 {
		return NewHTTPError(http.StatusBadRequest, "requiredFollowers must be at least 1")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	return nil
}

// 監査ログ用の JSON。失敗しても操作自体は止めない。
func snapshot(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

// 期間パラメータ（RFC3339）。handler から使う。
func ParseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"

	"github.com/shopspring/decimal"
)

type RefundUsecase struct {
	refunds     repo.RefundRepository
	orders      repo.OrderRepository
	coordinator *Coordinator
}

func NewRefundUsecase(refunds repo.RefundRepository, orders repo.OrderRepository, coordinator *Coordinator) *RefundUsecase {
	return &RefundUsecase{refunds: refunds, orders: orders, coordinator: coordinator}
}

type RefundSubmitInput struct {
	OrderID     string
	ClientEmail string
	ClientName  string
	Amount      *decimal.Decimal
	Reason      string
}

type RefundReviewInput struct {
	Status       string
	AdminRemarks *string
}

// ログイン中のユーザーが返金を依頼する
func (u *RefundUsecase) Submit(ctx context.Context, userID string, in RefundSubmitInput) (model.Refund, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Refund{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID := strings.TrimSpace(in.OrderID)
	email := strings.TrimSpace(in.ClientEmail)
	name := strings.TrimSpace(in.ClientName)
	reason := strings.TrimSpace(in.Reason)

	switch {
	case orderID == "":
		return model.Refund{}, missingField("orderId")
	case email == "":
		return model.Refund{}, missingField("clientEmail")
	case name == "":
		return model.Refund{}, missingField("clientName")
	case in.Amount == nil:
		return model.Refund{}, missingField("amount")
	case reason == "":
		return model.Refund{}, missingField("reason")
	}
	if !validEmail(email) {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid clientEmail")
	}
	if in.Amount.IsNegative() {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "amount must not be negative")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Refund{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return model.Refund{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.coordinator.ApplyRefundRequested(ctx, o, model.Refund{
		UserID:      userID,
		ClientName:  name,
		ClientEmail: email,
		Amount:      *in.Amount,
		Reason:      reason,
	})
}

// 管理者の審査。status が不正なら何も読まず・書かずに返す。
func (u *RefundUsecase) Review(ctx context.Context, refundID string, in RefundReviewInput) (model.Refund, error) {
	status := model.ReviewStatus(strings.TrimSpace(in.Status))
	if !status.IsDecision() {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	refundID = strings.TrimSpace(refundID)
	if refundID == "" {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	updated, err := u.refunds.UpdateReview(ctx, refundID, status, in.AdminRemarks)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Refund{}, NewHTTPError(http.StatusNotFound, "refund not found")
		}
		return model.Refund{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.coordinator.ApplyRefundReviewed(ctx, updated); err != nil {
		return model.Refund{}, err
	}
	return updated, nil
}

func (u *RefundUsecase) List(ctx context.Context, f repo.RefundListFilter) (ListOutput[model.Refund], error) {
	if f.Status != "" && !model.ReviewStatus(f.Status).IsDecision() && model.ReviewStatus(f.Status) != model.ReviewStatusPending {
		return ListOutput[model.Refund]{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	f.Page, f.Limit = repo.NormalizePage(f.Page, f.Limit)

	items, total, err := u.refunds.List(ctx, f)
	if err != nil {
		return ListOutput[model.Refund]{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ListOutput[model.Refund]{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// 自分の返金リクエスト
func (u *RefundUsecase) ListMine(ctx context.Context, userID string, page int, limit int) (ListOutput[model.Refund], error) {
	if strings.TrimSpace(userID) == "" {
		return ListOutput[model.Refund]{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.List(ctx, repo.RefundListFilter{UserID: userID, Page: page, Limit: limit, Sort: repo.SortNewest})
}

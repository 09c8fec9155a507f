package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"

	"github.com/shopspring/decimal"
)

type PaymentUsecase struct {
	payments    repo.PaymentRepository
	orders      repo.OrderRepository
	coordinator *Coordinator
	idGen       IDGenerator
	clock       Clock
	logger      *slog.Logger
}

func NewPaymentUsecase(
	payments repo.PaymentRepository,
	orders repo.OrderRepository,
	coordinator *Coordinator,
	idGen IDGenerator,
	clock Clock,
	logger *slog.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		payments:    payments,
		orders:      orders,
		coordinator: coordinator,
		idGen:       idGen,
		clock:       clock,
		logger:      logger,
	}
}

// クライアントが提出する入金の証跡
type PaymentSubmitInput struct {
	OrderID       string
	ClientName    string
	ClientEmail   string
	Amount        *decimal.Decimal
	PaymentMethod string
	TransactionID string
	ScreenshotURL *string
	Remarks       *string
}

type PaymentReviewInput struct {
	Status  string
	Remarks *string
}

// 入金の証跡を登録する
func (u *PaymentUsecase) Submit(ctx context.Context, in PaymentSubmitInput) (model.Payment, error) {
	orderID := strings.TrimSpace(in.OrderID)
	name := strings.TrimSpace(in.ClientName)
	email := strings.TrimSpace(in.ClientEmail)
	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	txnID := strings.TrimSpace(in.TransactionID)

	//必須チェック
	switch {
	case orderID == "":
		return model.Payment{}, missingField("orderId")
	case name == "":
		return model.Payment{}, missingField("clientName")
	case email == "":
		return model.Payment{}, missingField("clientEmail")
	case in.Amount == nil:
		return model.Payment{}, missingField("amount")
	case method == "":
		return model.Payment{}, missingField("paymentMethod")
	case txnID == "":
		return model.Payment{}, missingField("transactionId")
	}
	if !validEmail(email) {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid clientEmail")
	}
	if in.Amount.IsNegative() {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "amount must not be negative")
	}
	if !method.Valid() {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid paymentMethod")
	}

	//注文の存在確認
	if _, err := u.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Payment{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//同じ取引の二重登録
	_, exists, err := u.payments.FindByTransaction(ctx, txnID, method)
	if err != nil {
		return model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Payment{}, NewHTTPError(http.StatusConflict, "transaction already submitted")
	}

	remarks := model.DefaultPaymentRemarks
	if in.Remarks != nil && strings.TrimSpace(*in.Remarks) != "" {
		remarks = strings.TrimSpace(*in.Remarks)
	}

	now := u.clock.Now()
	p := model.Payment{
		ID:            u.idGen.NewID(),
		OrderID:       orderID,
		ClientName:    name,
		ClientEmail:   email,
		Amount:        *in.Amount,
		PaymentMethod: method,
		TransactionID: txnID,
		ScreenshotURL: trimmedOrNil(in.ScreenshotURL),
		Remarks:       remarks,
		Status:        model.ReviewStatusPending,
		PaymentDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.payments.Create(ctx, p)
	if err != nil {
		//事前チェックをすり抜けた同時登録
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Payment{}, NewHTTPError(http.StatusConflict, "transaction already submitted")
		}
		u.logger.ErrorContext(ctx, "create payment failed", slog.String("order_id", orderID), slog.Any("error", err))
		return model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.coordinator.ApplyPaymentCreated(ctx, created)
	return created, nil
}

// 管理者の審査（Approved / Rejected）
func (u *PaymentUsecase) Review(ctx context.Context, paymentID string, in PaymentReviewInput) (model.Payment, error) {
	status := model.ReviewStatus(strings.TrimSpace(in.Status))
	if !status.IsDecision() {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	updated, err := u.payments.UpdateReview(ctx, paymentID, status, in.Remarks)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Payment{}, NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.coordinator.ApplyPaymentReviewed(ctx, updated)
	return updated, nil
}

func (u *PaymentUsecase) Get(ctx context.Context, paymentID string) (model.Payment, error) {
	p, err := u.payments.FindByID(ctx, strings.TrimSpace(paymentID))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Payment{}, NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 管理画面の一覧
func (u *PaymentUsecase) List(ctx context.Context, f repo.PaymentListFilter) (ListOutput[model.Payment], error) {
	if f.Status != "" && !model.ReviewStatus(f.Status).IsDecision() && model.ReviewStatus(f.Status) != model.ReviewStatusPending {
		return ListOutput[model.Payment]{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if f.Method != "" && !model.PaymentMethod(f.Method).Valid() {
		return ListOutput[model.Payment]{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	f.Page, f.Limit = repo.NormalizePage(f.Page, f.Limit)

	items, total, err := u.payments.List(ctx, f)
	if err != nil {
		return ListOutput[model.Payment]{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ListOutput[model.Payment]{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// 注文に紐づく入金（新しい順）
func (u *PaymentUsecase) ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, _, err := u.payments.List(ctx, repo.PaymentListFilter{OrderID: orderID, Page: 1, Limit: 100, Sort: repo.SortNewest})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func missingField(name string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "missing required field: "+name)
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// 空文字は nil にそろえる
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

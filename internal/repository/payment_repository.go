package repository

import (
	"context"

	"growthmarket/internal/domain/model"
)

type PaymentListFilter struct {
	Page    int
	Limit   int
	Status  string
	OrderID string
	Method  string
	Sort    SortOrder
}

type PaymentRepository interface {
	//(transaction_id, payment_method) が重複していれば ErrDuplicate
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	FindByID(ctx context.Context, paymentID string) (model.Payment, error)
	FindByTransaction(ctx context.Context, transactionID string, method model.PaymentMethod) (model.Payment, bool, error)

	//審査結果の保存。remarks が nil なら既存値のまま。
	UpdateReview(ctx context.Context, paymentID string, status model.ReviewStatus, remarks *string) (model.Payment, error)

	List(ctx context.Context, f PaymentListFilter) ([]model.Payment, int64, error)
}

package repository

import (
	"context"

	"growthmarket/internal/domain/model"
)

type RefundListFilter struct {
	Page    int
	Limit   int
	Status  string
	UserID  string
	OrderID string
	Sort    SortOrder
}

type RefundRepository interface {
	Create(ctx context.Context, r model.Refund) (model.Refund, error)
	FindByID(ctx context.Context, refundID string) (model.Refund, error)
	UpdateReview(ctx context.Context, refundID string, status model.ReviewStatus, adminRemarks *string) (model.Refund, error)
	List(ctx context.Context, f RefundListFilter) ([]model.Refund, int64, error)
}

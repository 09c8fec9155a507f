package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RefundGormRepository struct {
	db *gorm.DB
}

func NewRefundGormRepository(db *gorm.DB) *RefundGormRepository {
	return &RefundGormRepository{db: db}
}

func (r *RefundGormRepository) Create(ctx context.Context, rf model.Refund) (model.Refund, error) {
	if err := r.db.WithContext(ctx).Create(&rf).Error; err != nil {
		return model.Refund{}, fmt.Errorf("create refund: %w", err)
	}
	return rf, nil
}

func (r *RefundGormRepository) FindByID(ctx context.Context, refundID string) (model.Refund, error) {
	var rf model.Refund
	err := r.db.WithContext(ctx).Where("id = ?", refundID).First(&rf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Refund{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Refund{}, fmt.Errorf("find refund: %w", err)
	}
	return rf, nil
}

func (r *RefundGormRepository) UpdateReview(ctx context.Context, refundID string, status model.ReviewStatus, adminRemarks *string) (model.Refund, error) {
	fields := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if adminRemarks != nil {
		fields["admin_remarks"] = *adminRemarks
	}

	var rf model.Refund
	res := r.db.WithContext(ctx).Model(&rf).
		Clauses(clause.Returning{}).
		Where("id = ?", refundID).
		Updates(fields)
	if res.Error != nil {
		return model.Refund{}, fmt.Errorf("update refund: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Refund{}, repo.ErrNotFound
	}
	return rf, nil
}

func (r *RefundGormRepository) List(ctx context.Context, f repo.RefundListFilter) ([]model.Refund, int64, error) {
	f.Page, f.Limit = repo.NormalizePage(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&model.Refund{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.OrderID != "" {
		q = q.Where("order_id = ?", f.OrderID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Refund{}, 0, fmt.Errorf("count refunds: %w", err)
	}

	var items []model.Refund
	offset := (f.Page - 1) * f.Limit
	if err := q.Order(orderBy(string(f.Sort))).Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Refund{}, 0, fmt.Errorf("list refunds: %w", err)
	}
	return items, total, nil
}

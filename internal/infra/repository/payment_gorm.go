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

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Payment{}, repo.ErrDuplicate
		}
		return model.Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("find payment: %w", err)
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByTransaction(ctx context.Context, transactionID string, method model.PaymentMethod) (model.Payment, bool, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND payment_method = ?", transactionID, method).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, fmt.Errorf("find payment by transaction: %w", err)
	}
	return p, true, nil
}

func (r *PaymentGormRepository) UpdateReview(ctx context.Context, paymentID string, status model.ReviewStatus, remarks *string) (model.Payment, error) {
	fields := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if remarks != nil {
		fields["remarks"] = *remarks
	}

	var p model.Payment
	res := r.db.WithContext(ctx).Model(&p).
		Clauses(clause.Returning{}).
		Where("id = ?", paymentID).
		Updates(fields)
	if res.Error != nil {
		return model.Payment{}, fmt.Errorf("update payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Payment{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *PaymentGormRepository) List(ctx context.Context, f repo.PaymentListFilter) ([]model.Payment, int64, error) {
	f.Page, f.Limit = repo.NormalizePage(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&model.Payment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OrderID != "" {
		q = q.Where("order_id = ?", f.OrderID)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Payment{}, 0, fmt.Errorf("count payments: %w", err)
	}

	var items []model.Payment
	offset := (f.Page - 1) * f.Limit
	if err := q.Order(orderBy(string(f.Sort))).Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Payment{}, 0, fmt.Errorf("list payments: %w", err)
	}
	return items, total, nil
}

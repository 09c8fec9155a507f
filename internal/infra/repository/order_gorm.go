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

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("find order: %w", err)
	}
	return o, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	return r.update(ctx, orderID, map[string]any{"status": status})
}

func (r *OrderGormRepository) UpdateDetails(ctx context.Context, orderID string, u repo.OrderDetailsUpdate) (model.Order, error) {
	fields := map[string]any{}
	if u.ClientName != nil {
		fields["client_name"] = *u.ClientName
	}
	if u.ClientEmail != nil {
		fields["client_email"] = *u.ClientEmail
	}
	if u.ClientPhone != nil {
		fields["client_phone"] = *u.ClientPhone
	}
	if u.ProfileLink != nil {
		fields["profile_link"] = *u.ProfileLink
	}
	if u.PostLink != nil {
		fields["post_link"] = *u.PostLink
	}
	if u.SocialID != nil {
		fields["social_id"] = *u.SocialID
	}
	if u.RequiredFollowers != nil {
		fields["required_followers"] = *u.RequiredFollowers
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}

	if len(fields) == 0 {
		return r.FindByID(ctx, orderID)
	}
	return r.update(ctx, orderID, fields)
}

// 1件更新して RETURNING で更新後の行を返す
func (r *OrderGormRepository) update(ctx context.Context, orderID string, fields map[string]any) (model.Order, error) {
	fields["updated_at"] = time.Now()

	var o model.Order
	res := r.db.WithContext(ctx).Model(&o).
		Clauses(clause.Returning{}).
		Where("id = ?", orderID).
		Updates(fields)
	if res.Error != nil {
		return model.Order{}, fmt.Errorf("update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&model.Order{})
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	f.Page, f.Limit = repo.NormalizePage(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ClientEmail != "" {
		q = q.Where("client_email = ?", f.ClientEmail)
	}

	//期間絞り込み
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, fmt.Errorf("count orders: %w", err)
	}

	var items []model.Order
	offset := (f.Page - 1) * f.Limit
	if err := q.Order(orderBy(string(f.Sort))).Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Order{}, 0, fmt.Errorf("list orders: %w", err)
	}

	return items, total, nil
}

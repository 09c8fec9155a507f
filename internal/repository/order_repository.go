package repository

import (
	"context"
	"time"

	"growthmarket/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderListFilter struct {
	Page        int
	Limit       int
	Status      string
	UserID      string
	ClientEmail string
	From        *time.Time
	To          *time.Time
	Sort        SortOrder
}

// 管理者が個別に変更できる項目。nil は「変更しない」。
// status はここに含めない（手動上書きは別操作）。
type OrderDetailsUpdate struct {
	ClientName        *string
	ClientEmail       *string
	ClientPhone       *string
	ProfileLink       *string
	PostLink          *string
	SocialID          *string
	RequiredFollowers *int64
	Price             *decimal.Decimal
}

func (u OrderDetailsUpdate) IsEmpty() bool {
	return u.ClientName == nil && u.ClientEmail == nil && u.ClientPhone == nil &&
		u.ProfileLink == nil && u.PostLink == nil && u.SocialID == nil &&
		u.RequiredFollowers == nil && u.Price == nil
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	//更新後のレコードを返す
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)
	UpdateDetails(ctx context.Context, orderID string, u OrderDetailsUpdate) (model.Order, error)

	//物理削除（Payment/Refund は消さない）
	Delete(ctx context.Context, orderID string) error

	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
}

package repository

import (
	"context"

	"growthmarket/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email 重複は ErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// 見つからなければ (nil, nil)
	FindByID(ctx context.Context, userID string) (*model.User, error)
	// 見つからなければ (nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 最終ログインやロールの更新
	Update(ctx context.Context, user *model.User) error
}

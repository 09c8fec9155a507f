package usecase

import (
	"context"
	"time"

	"growthmarket/internal/notification"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 通知の送信依頼。結果を待たずに戻る。
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message)
}

type ListOutput[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

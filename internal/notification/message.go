// Package notification は client / admin 宛のメール通知。
// 送信は常にベストエフォートで、結果は呼び出し元の処理に影響しない。
package notification

import (
	"context"
	"errors"
)

// ErrNotificationFailure はログ出力用。呼び出し元へは返さない。
var ErrNotificationFailure = errors.New("notification failure")

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

type Result struct {
	Success bool
	Err     error
}

func OK() Result { return Result{Success: true} }

func Failed(err error) Result { return Result{Success: false, Err: err} }

// Gateway はメール送信の外部接続。panic も error も外に出さず Result で返す。
type Gateway interface {
	Send(ctx context.Context, msg Message) Result
}

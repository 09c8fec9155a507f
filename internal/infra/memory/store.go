// Package memory はプロセス内で完結する Ledger Store 実装。
// STORE_DRIVER=memory の開発起動とテストで使う。再起動でデータは消える。
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	orders    map[string]model.Order
	payments  map[string]model.Payment
	refunds   map[string]model.Refund
	users     map[string]model.User
	auditLogs []model.AuditLog

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		orders:   map[string]model.Order{},
		payments: map[string]model.Payment{},
		refunds:  map[string]model.Refund{},
		users:    map[string]model.User{},
		now:      time.Now,
	}
}

func (s *Store) Orders() repo.OrderRepository       { return &orderRepo{s: s} }
func (s *Store) Payments() repo.PaymentRepository   { return &paymentRepo{s: s} }
func (s *Store) Refunds() repo.RefundRepository     { return &refundRepo{s: s} }
func (s *Store) Users() repo.UserRepository         { return &userRepo{s: s} }
func (s *Store) AuditLogs() repo.AuditLogRepository { return &auditLogRepo{s: s} }
func (s *Store) TxManager() repo.TransactionManager { return &txManager{s: s} }

// ロールバックはしない。単一プロセス内の開発用途。
type txManager struct{ s *Store }

func (tm *txManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(tm.s)
}

// created_at で並べてページを切り出す
func page[T any](items []T, createdAt func(T) time.Time, sort repo.SortOrder, p int, limit int) ([]T, int64) {
	p, limit = repo.NormalizePage(p, limit)

	slices.SortFunc(items, func(a, b T) int {
		c := createdAt(a).Compare(createdAt(b))
		if sort == repo.SortOldest {
			return c
		}
		return -c
	})

	total := int64(len(items))
	start := (p - 1) * limit
	if start >= len(items) {
		return []T{}, total
	}
	end := min(start+limit, len(items))
	return items[start:end], total
}

package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"growthmarket/internal/domain/model"
	"growthmarket/internal/infra/memory"
	repo "growthmarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func seedOrders(t *testing.T, s *memory.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		status := model.OrderStatusPending
		if i%2 == 1 {
			status = model.OrderStatusInProgress
		}
		_, err := s.Orders().Create(context.Background(), model.Order{
			ID:          fmt.Sprintf("o%d", i),
			UserID:      "u1",
			ClientEmail: "a@x.test",
			Status:      status,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestOrders_ListFilterAndPaging(t *testing.T) {
	s := memory.NewStore()
	seedOrders(t, s, 5)
	ctx := context.Background()

	items, total, err := s.Orders().List(ctx, repo.OrderListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "o4", items[0].ID)

	items, total, err = s.Orders().List(ctx, repo.OrderListFilter{Page: 2, Limit: 2, Sort: repo.SortOldest, Status: string(model.OrderStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "o4", items[0].ID)

	items, _, err = s.Orders().List(ctx, repo.OrderListFilter{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrders_UpdateAndDelete(t *testing.T) {
	s := memory.NewStore()
	seedOrders(t, s, 1)
	ctx := context.Background()

	o, err := s.Orders().UpdateDetails(ctx, "o0", repo.OrderDetailsUpdate{ClientName: pointy.String("Sana")})
	require.NoError(t, err)
	assert.Equal(t, "Sana", o.ClientName)
	assert.Equal(t, model.OrderStatusPending, o.Status)

	require.NoError(t, s.Orders().Delete(ctx, "o0"))
	assert.ErrorIs(t, s.Orders().Delete(ctx, "o0"), repo.ErrNotFound)

	_, err = s.Orders().UpdateStatus(ctx, "o0", model.OrderStatusCompleted)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPayments_UniqueTransactionPerMethod(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	p := model.Payment{ID: "p1", OrderID: "o1", TransactionID: "T1", PaymentMethod: model.PaymentMethodPaypal, Status: model.ReviewStatusPending}
	_, err := s.Payments().Create(ctx, p)
	require.NoError(t, err)

	p.ID = "p2"
	_, err = s.Payments().Create(ctx, p)
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	//別の支払い方法なら同じ取引IDでも登録できる
	p.ID = "p3"
	p.PaymentMethod = model.PaymentMethodJazzcash
	_, err = s.Payments().Create(ctx, p)
	require.NoError(t, err)

	_, found, err := s.Payments().FindByTransaction(ctx, "T1", model.PaymentMethodEasypaisa)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPayments_UpdateReviewKeepsRemarks(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	_, err := s.Payments().Create(ctx, model.Payment{ID: "p1", TransactionID: "T1", PaymentMethod: model.PaymentMethodPaypal, Remarks: model.DefaultPaymentRemarks})
	require.NoError(t, err)

	p, err := s.Payments().UpdateReview(ctx, "p1", model.ReviewStatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusRejected, p.Status)
	assert.Equal(t, model.DefaultPaymentRemarks, p.Remarks)

	_, err = s.Payments().UpdateReview(ctx, "missing", model.ReviewStatusApproved, nil)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAuditLogs_NewestFirstWithOffset(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	for i, a := range []model.AuditAction{model.AuditActionUpdateOrder, model.AuditActionOverrideOrderStatus, model.AuditActionDeleteOrder} {
		require.NoError(t, s.AuditLogs().Create(ctx, model.AuditLog{ActorUserID: "admin", Action: a, ResourceID: "o1", CreatedAt: base.Add(time.Duration(i) * time.Second)}))
	}
	require.NoError(t, s.AuditLogs().Create(ctx, model.AuditLog{ActorUserID: "admin", Action: model.AuditActionUpdateOrder, ResourceID: "o2", CreatedAt: base}))

	logs, err := s.AuditLogs().List(ctx, repo.AuditLogFilter{ResourceID: pointy.String("o1"), Offset: 1})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.AuditActionOverrideOrderStatus, logs[0].Action)

	action := model.AuditActionUpdateOrder
	logs, err = s.AuditLogs().List(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

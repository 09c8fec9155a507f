package usecase_test

import (
	"context"
	"testing"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"
	"growthmarket/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"
)

type refundFixture struct {
	refunds  *RefundRepoMock
	orders   *OrderRepoMock
	notifier *recordingNotifier
	uc       *usecase.RefundUsecase
}

func newRefundFixture() *refundFixture {
	f := &refundFixture{
		refunds:  new(RefundRepoMock),
		orders:   new(OrderRepoMock),
		notifier: &recordingNotifier{},
	}
	coord := usecase.NewCoordinator(f.orders, f.refunds, f.notifier, &seqIDs{}, fixedClock{t: testNow}, adminAddr, discardLogger())
	f.uc = usecase.NewRefundUsecase(f.refunds, f.orders, coord)
	return f
}

func validRefundInput() usecase.RefundSubmitInput {
	amount := decimal.RequireFromString("500")
	return usecase.RefundSubmitInput{
		OrderID:     "o1",
		ClientEmail: "c@x.test",
		ClientName:  "Bilal",
		Amount:      &amount,
		Reason:      "not delivered",
	}
}

func TestRefundUsecase_Submit_RequiresUser(t *testing.T) {
	f := newRefundFixture()
	_, err := f.uc.Submit(context.Background(), "", validRefundInput())
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestRefundUsecase_Submit_MissingFields(t *testing.T) {
	cases := map[string]func(in *usecase.RefundSubmitInput){
		"orderId":     func(in *usecase.RefundSubmitInput) { in.OrderID = "" },
		"clientEmail": func(in *usecase.RefundSubmitInput) { in.ClientEmail = "" },
		"clientName":  func(in *usecase.RefundSubmitInput) { in.ClientName = "" },
		"amount":      func(in *usecase.RefundSubmitInput) { in.Amount = nil },
		"reason":      func(in *usecase.RefundSubmitInput) { in.Reason = " " },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			f := newRefundFixture()
			in := validRefundInput()
			mutate(&in)

			_, err := f.uc.Submit(context.Background(), "u1", in)
			assert.ErrorIs(t, err, usecase.ErrInvalidArgument)
			assertErrContains(t, err, field)
			f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestRefundUsecase_Submit_OrderNotFound(t *testing.T) {
	f := newRefundFixture()
	f.orders.On("FindByID", mock.Anything, "o1").Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.Submit(context.Background(), "u1", validRefundInput())
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestRefundUsecase_Submit_AlreadyRefunded(t *testing.T) {
	f := newRefundFixture()
	f.orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusRefunded}, nil)

	_, err := f.uc.Submit(context.Background(), "u1", validRefundInput())
	assert.ErrorIs(t, err, usecase.ErrConflict)
	f.refunds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefundUsecase_Submit_Success(t *testing.T) {
	f := newRefundFixture()
	f.orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusInProgress}, nil)
	f.refunds.On("Create", mock.Anything, mock.MatchedBy(func(r model.Refund) bool {
		return r.UserID == "u1" && r.OrderID == "o1" && r.Reason == "not delivered"
	})).Return(model.Refund{ID: "id-1", UserID: "u1", OrderID: "o1", ClientEmail: "c@x.test", Status: model.ReviewStatusPending}, nil)
	f.orders.On("UpdateStatus", mock.Anything, "o1", model.OrderStatusRefundPending).
		Return(model.Order{ID: "o1", Status: model.OrderStatusRefundPending}, nil)

	rf, err := f.uc.Submit(context.Background(), "u1", validRefundInput())
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusPending, rf.Status)
	f.orders.AssertExpectations(t)
	assert.Equal(t, []string{"c@x.test", adminAddr}, f.notifier.recipients())
}

func TestRefundUsecase_Review_InvalidStatusTouchesNothing(t *testing.T) {
	f := newRefundFixture()

	_, err := f.uc.Review(context.Background(), "r1", usecase.RefundReviewInput{Status: "Pending"})
	assert.ErrorIs(t, err, usecase.ErrInvalidArgument)

	f.refunds.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.refunds.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundUsecase_Review_NotFound(t *testing.T) {
	f := newRefundFixture()
	f.refunds.On("UpdateReview", mock.Anything, "r404", model.ReviewStatusRejected, (*string)(nil)).
		Return(model.Refund{}, repo.ErrNotFound)

	_, err := f.uc.Review(context.Background(), "r404", usecase.RefundReviewInput{Status: "Rejected"})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestRefundUsecase_Review_ApprovedMarksOrderRefunded(t *testing.T) {
	f := newRefundFixture()
	remarks := pointy.String("ok")
	f.refunds.On("UpdateReview", mock.Anything, "r1", model.ReviewStatusApproved, remarks).
		Return(model.Refund{ID: "r1", OrderID: "o1", ClientEmail: "c@x.test", Status: model.ReviewStatusApproved, AdminRemarks: "ok"}, nil)
	f.orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusRefundPending}, nil)
	f.orders.On("UpdateStatus", mock.Anything, "o1", model.OrderStatusRefunded).
		Return(model.Order{ID: "o1", Status: model.OrderStatusRefunded}, nil)

	rf, err := f.uc.Review(context.Background(), "r1", usecase.RefundReviewInput{Status: "Approved", AdminRemarks: remarks})
	require.NoError(t, err)
	assert.Equal(t, "ok", rf.AdminRemarks)
	f.orders.AssertExpectations(t)
}

func TestRefundUsecase_ListMine(t *testing.T) {
	f := newRefundFixture()
	f.refunds.On("List", mock.Anything, repo.RefundListFilter{UserID: "u1", Page: 1, Limit: 50, Sort: repo.SortNewest}).
		Return([]model.Refund{{ID: "r1"}}, int64(1), nil)

	out, err := f.uc.ListMine(context.Background(), "u1", 0, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	_, err = f.uc.ListMine(context.Background(), "", 1, 10)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

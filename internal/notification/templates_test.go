package notification

import (
	"testing"

	"growthmarket/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.openly.dev/pointy"
)

func TestPaymentSubmittedAdmin_EscapesClientInput(t *testing.T) {
	p := model.Payment{
		ID:            "p1",
		OrderID:       "o1",
		ClientName:    "<script>alert(1)</script>",
		ClientEmail:   "c@example.com",
		Amount:        decimal.RequireFromString("1500"),
		PaymentMethod: model.PaymentMethodPaypal,
		TransactionID: "T1",
		ScreenshotURL: pointy.String("https://cdn.example.com/s.png"),
	}

	msg := PaymentSubmittedAdmin("ops@example.com", p)

	assert.Equal(t, "ops@example.com", msg.To)
	assert.Contains(t, msg.Subject, "T1")
	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.HTMLBody, "1500.00")
	assert.Contains(t, msg.HTMLBody, "https://cdn.example.com/s.png")
}

func TestPaymentReviewedClient_UsesStatus(t *testing.T) {
	p := model.Payment{
		OrderID:     "o1",
		ClientName:  "Ali",
		ClientEmail: "ali@example.com",
		Status:      model.ReviewStatusApproved,
		Remarks:     model.DefaultPaymentRemarks,
	}

	msg := PaymentReviewedClient(p)

	assert.Equal(t, "ali@example.com", msg.To)
	assert.Equal(t, "Your payment has been Approved", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "No remarks.")
}

func TestRefundReviewedClient_ApprovedAndRejectedWording(t *testing.T) {
	r := model.Refund{
		OrderID:     "o1",
		ClientName:  "Ali",
		ClientEmail: "ali@example.com",
		Amount:      decimal.NewFromInt(20),
		Status:      model.ReviewStatusApproved,
	}

	approved := RefundReviewedClient(r)
	assert.Equal(t, "Your refund has been approved", approved.Subject)
	assert.Contains(t, approved.HTMLBody, "20.00")

	r.Status = model.ReviewStatusRejected
	r.AdminRemarks = "service already delivered"
	rejected := RefundReviewedClient(r)
	assert.Equal(t, "Your refund request has been rejected", rejected.Subject)
	assert.Contains(t, rejected.HTMLBody, "service already delivered")
}

func TestOrderPlaced_ClientAndAdmin(t *testing.T) {
	o := model.Order{
		ID:                "o1",
		ClientName:        "Ali",
		ClientEmail:       "ali@example.com",
		Platform:          model.PlatformInstagram,
		Service:           model.ServiceFollowers,
		RequiredFollowers: 1000,
		Price:             decimal.RequireFromString("12.5"),
		Status:            model.OrderStatusPending,
	}

	client := OrderPlacedClient(o)
	assert.Equal(t, "ali@example.com", client.To)
	assert.Contains(t, client.HTMLBody, "1000 Followers")
	assert.Contains(t, client.HTMLBody, "12.50")

	admin := OrderPlacedAdmin("ops@example.com", o)
	assert.Equal(t, "ops@example.com", admin.To)
	assert.Contains(t, admin.Subject, "Ali")
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodEasypaisa    PaymentMethod = "easypaisa"
	PaymentMethodJazzcash     PaymentMethod = "jazzcash"
	PaymentMethodBankTransfer PaymentMethod = "bankTransfer"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodGooglePay    PaymentMethod = "googlePay"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodEasypaisa, PaymentMethodJazzcash, PaymentMethodBankTransfer,
		PaymentMethodPaypal, PaymentMethodGooglePay:
		return true
	}
	return false
}

// 入金・返金の審査ステータス（Payment / Refund 共通）
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "Pending"
	ReviewStatusApproved ReviewStatus = "Approved"
	ReviewStatusRejected ReviewStatus = "Rejected"
)

// 審査で設定できるのは Approved / Rejected のみ
func (s ReviewStatus) IsDecision() bool {
	return s == ReviewStatusApproved || s == ReviewStatusRejected
}

const DefaultPaymentRemarks = "No remarks."

// Payment はクライアントが提出した入金の証跡。
// (transaction_id, payment_method) は一意。
type Payment struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       string          `gorm:"type:uuid;not null;index" json:"orderId"`
	ClientName    string          `gorm:"type:varchar(255);not null" json:"clientName"`
	ClientEmail   string          `gorm:"type:varchar(255);not null" json:"clientEmail"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;uniqueIndex:ux_payments_txn_method,priority:2" json:"paymentMethod"`
	TransactionID string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_payments_txn_method,priority:1" json:"transactionId"`
	ScreenshotURL *string         `gorm:"type:text" json:"screenshotUrl,omitempty"`
	Remarks       string          `gorm:"type:text;not null;default:'No remarks.'" json:"remarks"`
	Status        ReviewStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentDate   time.Time       `gorm:"not null" json:"paymentDate"`
	CreatedAt     time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt"`
}

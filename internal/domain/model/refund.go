package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund は返金リクエスト。Order への参照はソフト参照（カスケードなし）。
type Refund struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string          `gorm:"type:varchar(64);not null;index" json:"userId"`
	OrderID      string          `gorm:"type:uuid;not null;index" json:"orderId"`
	ClientName   string          `gorm:"type:varchar(255);not null" json:"clientName"`
	ClientEmail  string          `gorm:"type:varchar(255);not null" json:"clientEmail"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Reason       string          `gorm:"type:text;not null" json:"reason"`
	Status       ReviewStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminRemarks string          `gorm:"type:text;not null;default:''" json:"adminRemarks"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}

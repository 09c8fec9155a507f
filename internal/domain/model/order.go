package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusPaymentPending OrderStatus = "Payment Pending"
	OrderStatusInProgress     OrderStatus = "In Progress"
	OrderStatusCompleted      OrderStatus = "Completed"
	OrderStatusCancelled      OrderStatus = "Cancelled"
	OrderStatusFailed         OrderStatus = "Failed"
	OrderStatusRefunded       OrderStatus = "Refunded"
	OrderStatusRefundPending  OrderStatus = "Refund Pending"
	OrderStatusRefundRejected OrderStatus = "Refund Rejected"
)

// 宣言済みのステータスかどうか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaymentPending, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed,
		OrderStatusRefunded, OrderStatusRefundPending, OrderStatusRefundRejected:
		return true
	}
	return false
}

type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformYouTube   Platform = "YouTube"
	PlatformFacebook  Platform = "Facebook"
	PlatformTwitter   Platform = "Twitter"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformFacebook, PlatformTwitter:
		return true
	}
	return false
}

type Service string

const (
	ServiceFollowers   Service = "Followers"
	ServiceLikes       Service = "Likes"
	ServiceViews       Service = "Views"
	ServiceComments    Service = "Comments"
	ServiceSubscribers Service = "Subscribers"
)

func (s Service) Valid() bool {
	switch s {
	case ServiceFollowers, ServiceLikes, ServiceViews, ServiceComments, ServiceSubscribers:
		return true
	}
	return false
}

type Order struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string          `gorm:"type:varchar(64);index" json:"userId,omitempty"`
	ClientName        string          `gorm:"type:varchar(255);not null" json:"clientName"`
	ClientEmail       string          `gorm:"type:varchar(255);not null;index" json:"clientEmail"`
	ClientPhone       string          `gorm:"type:varchar(50);not null" json:"clientPhone"`
	Platform          Platform        `gorm:"type:varchar(20);not null" json:"platform"`
	ProfileLink       string          `gorm:"type:text;not null" json:"profileLink"`
	PostLink          *string         `gorm:"type:text" json:"postLink,omitempty"`
	SocialID          *string         `gorm:"type:varchar(255)" json:"socialId,omitempty"`
	Service           Service         `gorm:"type:varchar(20);not null" json:"service"`
	RequiredFollowers int64           `gorm:"not null" json:"requiredFollowers"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt         time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updatedAt"`
}

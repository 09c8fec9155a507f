package model

import (
	"time"

	"gorm.io/datatypes"
)

// 管理者が直接行った操作の種類。
type AuditAction string

const (
	//ステータスの手動上書き（状態遷移ルールを通らない）。
	AuditActionOverrideOrderStatus AuditAction = "OVERRIDE_ORDER_STATUS"
	//注文の項目更新。
	AuditActionUpdateOrder AuditAction = "UPDATE_ORDER"
	//注文の削除（Payment/Refund は残る）。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のID。
	ActorUserID string `gorm:"type:varchar(64);not null;index" json:"actorUserId"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`

	ResourceID string `gorm:"type:varchar(64);not null;index" json:"resourceId"`

	//変更前後のスナップショット（jsonb）。
	Before datatypes.JSON `gorm:"type:jsonb" json:"before"`
	After  datatypes.JSON `gorm:"type:jsonb" json:"after"`

	//手動上書きの理由
	Reason string `gorm:"type:text" json:"reason,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

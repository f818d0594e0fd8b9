package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentNotificationLogStatus string

const (
	// PaymentNotificationLogStatusStored: verified and written to the store.
	PaymentNotificationLogStatusStored PaymentNotificationLogStatus = "stored"
	// PaymentNotificationLogStatusRejected: permanent failure (01, 02, 03).
	PaymentNotificationLogStatusRejected PaymentNotificationLogStatus = "rejected"
	// PaymentNotificationLogStatusFailed: infrastructure failure (99), safe to retry.
	PaymentNotificationLogStatusFailed PaymentNotificationLogStatus = "failed"
)

// PaymentNotificationLog is the audit trail of every processed notification.
// It never contains partner secrets.
type PaymentNotificationLog struct {
	ID            string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	BankCode      string `gorm:"column:bank_code;type:varchar(64);index:idx_bank_code_token_key,priority:1" json:"bank_code"`
	TokenKey      string `gorm:"column:token_key;type:varchar(128);index:idx_bank_code_token_key,priority:2" json:"token_key"`
	TraceID       string `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	TraceTransfer string `gorm:"column:trace_transfer;type:varchar(128)" json:"trace_transfer"`
	// ResponseCode is the acknowledgement code (00, 01, 02, 03, 99)
	ResponseCode     string                       `gorm:"column:response_code;type:varchar(8);not null;index" json:"response_code"`
	ResponseID       string                       `gorm:"column:response_id;type:varchar(64)" json:"response_id"`
	NotificationTime time.Time                    `gorm:"column:notification_time" json:"notification_time"`
	Data             datatypes.JSON               `gorm:"column:data;type:jsonb" json:"data"`
	Result           *datatypes.JSON              `gorm:"column:result;type:jsonb" json:"result"`
	Status           PaymentNotificationLogStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

func (PaymentNotificationLog) TableName() string { return "payment_notification_log" }

package model

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentNotification is one gateway callback as received, with how it was handled.
// Rows are never updated and outlive the transaction they refer to.
type PaymentNotification struct {
	ID         string         `gorm:"type:uuid;primaryKey"`
	OrderID    string         `gorm:"type:varchar(36);not null;index"`
	PaymentID  string         `gorm:"type:varchar(20)"`
	Status     string         `gorm:"type:varchar(20)"`
	Outcome    string         `gorm:"type:varchar(20);not null"`
	Error      string         `gorm:"type:text"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt time.Time      `gorm:"not null;index"`
}

// TableName specifies the table name for PaymentNotification
func (PaymentNotification) TableName() string {
	return "payment_notifications"
}

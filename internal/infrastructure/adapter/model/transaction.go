package model

import (
	"time"
)

// Transaction represents the database model for payment transactions
type Transaction struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	PaymentID string    `gorm:"type:varchar(20);not null"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Email     *string   `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

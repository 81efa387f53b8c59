package model

import (
	"time"
)

// User is the database model for bot users. The table is shared with the bot,
// which owns every column except subscription_expiration_date.
type User struct {
	ID                         string     `gorm:"type:uuid;primaryKey"`
	TelegramID                 int64      `gorm:"column:user_id;not null;uniqueIndex"`
	Username                   *string    `gorm:"size:255"`
	FirstName                  *string    `gorm:"size:255"`
	LastName                   *string    `gorm:"size:255"`
	TrialState                 int        `gorm:"not null;default:2"`
	SubscriptionExpirationDate *time.Time `gorm:"index"`
	CreatedAt                  time.Time  `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

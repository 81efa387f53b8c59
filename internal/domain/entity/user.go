package entity

import (
	"time"

	errs "github.com/contactbot/payment-processor/internal/domain/error"
	tport "github.com/contactbot/payment-processor/internal/domain/port/core"
)

// DefaultTrialState is the number of free lookups granted to a new user
const DefaultTrialState = 2

// User is a bot user. Only the subscription expiration is written by the
// payment flow; trial bookkeeping belongs to the bot.
type User struct {
	ID                         string
	TelegramID                 int64
	Username                   *string
	FirstName                  *string
	LastName                   *string
	TrialState                 int
	SubscriptionExpirationDate *time.Time
	CreatedAt                  time.Time
}

// NewUser creates a new user with the default trial state
func NewUser(id string, telegramID int64, username *string, timeProvider tport.TimeProvider) (*User, error) {
	if id == "" || telegramID <= 0 {
		return nil, errs.ErrInvalidUserID
	}

	return &User{
		ID:         id,
		TelegramID: telegramID,
		Username:   username,
		TrialState: DefaultTrialState,
		CreatedAt:  timeProvider.Now(),
	}, nil
}

// HasActiveSubscription reports whether the subscription is still valid at now
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u.SubscriptionExpirationDate != nil && u.SubscriptionExpirationDate.After(now)
}

// SubscriptionExpiry returns the expiration granted by a confirmed payment at now
func SubscriptionExpiry(now time.Time, grantDays int) time.Time {
	return now.AddDate(0, 0, grantDays)
}

// UserUpdate lists the user fields that may be changed after creation
type UserUpdate struct {
	TrialState                 *int
	SubscriptionExpirationDate *time.Time
}

// IsEmpty reports whether the update carries nothing to persist
func (u UserUpdate) IsEmpty() bool {
	return u.TrialState == nil && u.SubscriptionExpirationDate == nil
}

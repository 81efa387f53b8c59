package messaging

import (
	"context"
	"time"
)

// EventSubscriptionGranted is the event type of SubscriptionGrantedEvent
const EventSubscriptionGranted = "subscription.granted"

// SubscriptionGrantedEvent tells the bot that a user has paid
type SubscriptionGrantedEvent struct {
	UserID        string    `json:"user_id"`
	TelegramID    int64     `json:"telegram_id"`
	TransactionID string    `json:"transaction_id"`
	PaymentID     string    `json:"payment_id"`
	Amount        int64     `json:"amount"`
	ExpiresAt     time.Time `json:"expires_at"`
	GrantedAt     time.Time `json:"granted_at"`
}

// EventPublisher publishes payment events to downstream consumers
type EventPublisher interface {
	PublishSubscriptionGranted(ctx context.Context, event SubscriptionGrantedEvent) error
	Close() error
}

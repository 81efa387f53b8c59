package event

import (
	"context"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/messaging"
)

// NoopPublisher drops events; used when no brokers are configured
type NoopPublisher struct {
	logger coreport.Logger
}

// NewNoopPublisher creates a publisher that only logs at debug level
func NewNoopPublisher(logger coreport.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishSubscriptionGranted(_ context.Context, event messaging.SubscriptionGrantedEvent) error {
	p.logger.Debug("Event publishing disabled, dropping event", map[string]any{
		"user_id":        event.UserID,
		"transaction_id": event.TransactionID,
	})
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

var _ messaging.EventPublisher = (*NoopPublisher)(nil)

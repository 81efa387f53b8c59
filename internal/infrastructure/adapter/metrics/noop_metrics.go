package metrics

import (
	"time"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
)

// NoopMetrics discards every observation
type NoopMetrics struct{}

// NewNoopMetrics creates metrics that record nothing
func NewNoopMetrics() coreport.PaymentMetrics {
	return NoopMetrics{}
}

func (NoopMetrics) IncPaymentInitiated(string)           {}
func (NoopMetrics) IncNotification(string)               {}
func (NoopMetrics) IncSubscriptionGranted()              {}
func (NoopMetrics) AddTransactionsCleaned(int)           {}
func (NoopMetrics) ObserveCleanupDuration(time.Duration) {}

package core

import "time"

// PaymentMetrics records payment flow counters
type PaymentMetrics interface {
	// IncPaymentInitiated counts payment init attempts by result
	IncPaymentInitiated(result string)
	// IncNotification counts gateway notifications by outcome
	IncNotification(outcome string)
	// IncSubscriptionGranted counts subscriptions granted by confirmed payments
	IncSubscriptionGranted()
	// AddTransactionsCleaned counts transactions removed by the cleaner
	AddTransactionsCleaned(count int)
	// ObserveCleanupDuration records the duration of one cleanup pass
	ObserveCleanupDuration(d time.Duration)
}

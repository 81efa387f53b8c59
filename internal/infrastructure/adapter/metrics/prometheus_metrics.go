package metrics

import (
	"database/sql"
	"time"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment_processor"

// PrometheusMetrics implements core.PaymentMetrics with Prometheus collectors
type PrometheusMetrics struct {
	paymentsInitiated    *prometheus.CounterVec
	notifications        *prometheus.CounterVec
	subscriptionsGranted prometheus.Counter
	transactionsCleaned  prometheus.Counter
	cleanupDuration      prometheus.Histogram
}

// NewRegistry creates a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// NewPrometheusMetrics registers the payment collectors on registry
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		paymentsInitiated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_initiated_total",
				Help:      "Payment init attempts by result",
			},
			[]string{"result"},
		),
		notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Gateway notifications by outcome",
			},
			[]string{"outcome"},
		),
		subscriptionsGranted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_granted_total",
			Help:      "Subscriptions granted by confirmed payments",
		}),
		transactionsCleaned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_cleaned_total",
			Help:      "Expired transactions removed by the cleaner",
		}),
		cleanupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cleanup_duration_seconds",
			Help:      "Duration of one cleanup pass",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}

// RegisterDBStats exposes the connection pool statistics of db
func RegisterDBStats(registry prometheus.Registerer, db *sql.DB, dbName string) error {
	return registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// IncPaymentInitiated counts payment init attempts by result
func (m *PrometheusMetrics) IncPaymentInitiated(result string) {
	m.paymentsInitiated.WithLabelValues(result).Inc()
}

// IncNotification counts gateway notifications by outcome
func (m *PrometheusMetrics) IncNotification(outcome string) {
	m.notifications.WithLabelValues(outcome).Inc()
}

// IncSubscriptionGranted counts subscriptions granted by confirmed payments
func (m *PrometheusMetrics) IncSubscriptionGranted() {
	m.subscriptionsGranted.Inc()
}

// AddTransactionsCleaned counts transactions removed by the cleaner
func (m *PrometheusMetrics) AddTransactionsCleaned(count int) {
	if count > 0 {
		m.transactionsCleaned.Add(float64(count))
	}
}

// ObserveCleanupDuration records the duration of one cleanup pass
func (m *PrometheusMetrics) ObserveCleanupDuration(d time.Duration) {
	m.cleanupDuration.Observe(d.Seconds())
}

var _ coreport.PaymentMetrics = (*PrometheusMetrics)(nil)

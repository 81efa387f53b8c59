package migration

import (
	"context"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"gorm.io/gorm"
)

// indexStatement is one idempotent DDL statement
type indexStatement struct {
	name string
	sql  string
}

// paymentIndexes serve the cleaner scan, the webhook lookups and the audit log
var paymentIndexes = []indexStatement{
	{
		name: "idx_transactions_created_at_status",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_status ON transactions (created_at, status)`,
	},
	{
		name: "idx_transactions_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_pending ON transactions (created_at)
			WHERE status NOT IN ('CONFIRMED', 'REFUNDED')`,
	},
	{
		name: "idx_payment_notifications_order_received",
		sql:  `CREATE INDEX IF NOT EXISTS idx_payment_notifications_order_received ON payment_notifications (order_id, received_at)`,
	},
}

// AdvancedIndexManager manages PostgreSQL-specific indexes and table settings
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates the indexes the payment queries rely on
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating PostgreSQL indexes", nil)

	for _, index := range paymentIndexes {
		if err := m.db.WithContext(ctx).Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("PostgreSQL indexes created successfully", map[string]any{
		"count": len(paymentIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL table settings. Failures are
// logged and ignored.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	// Status updates rewrite rows in place more often with free space on the page
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions SET (autovacuum_vacuum_scale_factor = 0.05)`).Error; err != nil {
		m.logger.Warn("Failed to set autovacuum scale factor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}
}

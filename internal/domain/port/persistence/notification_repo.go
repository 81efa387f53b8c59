package persistence

import (
	"context"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// NotificationRepository stores the audit trail of gateway notifications
type NotificationRepository interface {
	// Record appends one delivery to the audit log
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Record(ctx context.Context, record *entity.NotificationRecord) error
}

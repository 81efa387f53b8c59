package persistence

import (
	"context"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// ExpiredTransactionRepository selects and removes abandoned transactions.
// Both calls are meant to run inside one unit of work.
type ExpiredTransactionRepository interface {
	// SelectExpiredForDeletion returns up to limit ids of transactions created
	// before cutoff whose status is not in keep. Rows locked by another
	// transaction are skipped, the selected rows stay locked until the unit
	// of work ends.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	SelectExpiredForDeletion(ctx context.Context, cutoff time.Time, keep []entity.TransactionStatus, limit int) ([]string, error)

	// DeleteByIDs deletes the given transactions and returns the number removed
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

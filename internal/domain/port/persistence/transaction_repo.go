package persistence

import (
	"context"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// TransactionRepository defines the persistence operations for payment transactions
type TransactionRepository interface {
	// Create saves a new transaction
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same ID already exists
	// - ErrUserNotFound: If the owning user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its order ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// GetByIDForUpdate retrieves a transaction and locks its row until the
	// surrounding unit of work ends. Outside a unit of work the lock is released
	// immediately.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error)

	// UpdateFields writes the non-nil fields of update and returns the stored row.
	// An empty update is a no-op returning (nil, nil).
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrInvalidPaymentID, ErrInvalidStatus: If a field breaks the column limits
	// - ErrDatabaseConnection: If database connection fails
	UpdateFields(ctx context.Context, id string, update entity.TransactionUpdate) (*entity.Transaction, error)
}

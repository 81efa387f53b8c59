package persistence

import (
	"context"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// UserRepository defines the user operations the payment flow depends on
type UserRepository interface {
	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same telegram ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByTelegramID retrieves a user by the chat platform identifier
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this telegram ID
	// - ErrDatabaseConnection: If database connection fails
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)

	// GetByTransactionID resolves the owner of a transaction
	//
	// Possible errors:
	// - ErrUserNotFound: If the transaction or its owner doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.User, error)

	// UpdateFields writes the non-nil fields of update and returns the stored row.
	// An empty update is a no-op returning (nil, nil).
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateFields(ctx context.Context, id string, update entity.UserUpdate) (*entity.User, error)
}

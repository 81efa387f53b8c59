package persistence

import (
	"context"
)

// UnitOfWork runs repository calls inside one database transaction
type UnitOfWork interface {
	// Execute begins a transaction, calls fn with a context bound to it and
	// commits when fn returns nil. Any error or panic rolls the transaction
	// back. Connection failures are retried with a fresh transaction.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	// GetUserRepository returns a user repository bound to the transaction in ctx, if any
	GetUserRepository(ctx context.Context) UserRepository

	// GetTransactionRepository returns a transaction repository bound to the transaction in ctx, if any
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetExpiredTransactionRepository returns a cleanup repository bound to the transaction in ctx, if any
	GetExpiredTransactionRepository(ctx context.Context) ExpiredTransactionRepository

	// GetNotificationRepository returns a notification log repository bound to the transaction in ctx, if any
	GetNotificationRepository(ctx context.Context) NotificationRepository
}

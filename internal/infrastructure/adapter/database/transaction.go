package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/persistence"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	retryPolicy  RetryPolicy
	errorMapper  *ErrorMapper
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, retryPolicy RetryPolicy) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		retryPolicy:  retryPolicy,
		errorMapper:  NewErrorMapper(),
	}
}

// Execute runs fn inside a database transaction. A refused connection restarts
// the whole scope on a fresh transaction as the retry policy allows. Called with
// a context that already carries a transaction, fn joins it.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return withRetry(ctx, u.retryPolicy, u.logger, "unit_of_work", func() error {
		return u.execute(ctx, fn)
	})
}

// execute runs one attempt; the transaction is rolled back on every path that
// does not reach a successful commit
func (u *UnitOfWork) execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return u.errorMapper.MapError(tx.Error, "begin transaction")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			u.logger.Error("Panic inside unit of work, rolling back", map[string]any{
				"panic": fmt.Sprintf("%v", r),
			})
			u.rollback(tx)
			panic(r)
		}
		u.rollback(tx)
	}()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return u.errorMapper.MapError(err, "commit transaction")
	}
	committed = true

	return nil
}

// rollback rolls back tx; a transaction the server already ended is not an error
func (u *UnitOfWork) rollback(tx *gorm.DB) {
	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrTxDone):
		u.logger.Debug("Transaction already committed or rolled back", nil)
	default:
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
	}
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetExpiredTransactionRepository returns a cleanup repository in the current transaction
func (u *UnitOfWork) GetExpiredTransactionRepository(ctx context.Context) persistence.ExpiredTransactionRepository {
	return repository.NewExpiredTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetNotificationRepository returns a notification log repository in the current transaction
func (u *UnitOfWork) GetNotificationRepository(ctx context.Context) persistence.NotificationRepository {
	return repository.NewNotificationRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}

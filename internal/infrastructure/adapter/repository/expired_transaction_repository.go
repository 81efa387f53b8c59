package repository

import (
	"context"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpiredTransactionRepository selects and deletes abandoned transactions using GORM
type ExpiredTransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewExpiredTransactionRepository creates a new ExpiredTransactionRepository instance
func NewExpiredTransactionRepository(db *gorm.DB, logger coreport.Logger) *ExpiredTransactionRepository {
	return &ExpiredTransactionRepository{
		db:     db,
		logger: logger,
	}
}

// SelectExpiredForDeletion locks and returns up to limit ids of transactions
// created before cutoff whose status is not in keep. Rows held by another
// transaction are skipped rather than waited for.
func (r *ExpiredTransactionRepository) SelectExpiredForDeletion(
	ctx context.Context,
	cutoff time.Time,
	keep []entity.TransactionStatus,
	limit int,
) ([]string, error) {
	// Without a keep list CONFIRMED and REFUNDED rows would match
	if len(keep) == 0 {
		r.logger.Error("Refusing to select expired transactions without keep statuses", map[string]any{
			"cutoff": cutoff,
		})
		return nil, errs.ErrNoKeepStatuses
	}

	r.logger.Debug("Selecting expired transactions", map[string]any{
		"cutoff": cutoff,
		"keep":   keep,
		"limit":  limit,
	})

	statuses := make([]string, len(keep))
	for i, status := range keep {
		statuses[i] = string(status)
	}

	query := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Clauses(clause.Locking{
			Strength: clause.LockingStrengthUpdate,
			Options:  clause.LockingOptionsSkipLocked,
		}).
		Where("created_at < ?", cutoff).
		Where("status NOT IN ?", statuses)

	var ids []string
	if err := query.Order("created_at").Limit(limit).Pluck("id", &ids).Error; err != nil {
		r.logger.Error("Failed to select expired transactions", map[string]any{
			"cutoff": cutoff,
			"error":  err.Error(),
		})
		return nil, storeError(err)
	}

	return ids, nil
}

// DeleteByIDs deletes the given transactions and returns the number removed
func (r *ExpiredTransactionRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Transaction{})
	if result.Error != nil {
		r.logger.Error("Failed to delete expired transactions", map[string]any{
			"count": len(ids),
			"error": result.Error.Error(),
		})
		return 0, storeError(result.Error)
	}

	r.logger.Debug("Expired transactions deleted", map[string]any{
		"requested": len(ids),
		"deleted":   result.RowsAffected,
	})
	return result.RowsAffected, nil
}

package cleaner

import (
	"context"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/persistence"
)

// Defaults applied to zero config values
const (
	DefaultBatchSize = 1000
	DefaultMaxAge    = 10 * time.Minute
	DefaultInterval  = 5 * time.Minute
)

// DefaultKeepStatuses are the statuses never removed by the cleaner
var DefaultKeepStatuses = []entity.TransactionStatus{
	entity.StatusConfirmed,
	entity.StatusRefunded,
}

// Config controls which transactions count as expired
type Config struct {
	BatchSize    int
	MaxAge       time.Duration
	KeepStatuses []entity.TransactionStatus
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxAge <= 0 {
		c.MaxAge = DefaultMaxAge
	}
	if len(c.KeepStatuses) == 0 {
		c.KeepStatuses = DefaultKeepStatuses
	}
	return c
}

// ExpiryCleaner deletes transactions that stayed in a non-final status for
// longer than MaxAge. Rows locked by a notification in flight are skipped and
// picked up by a later pass.
type ExpiryCleaner struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.PaymentMetrics
	config       Config
}

// NewExpiryCleaner creates a new ExpiryCleaner
func NewExpiryCleaner(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.PaymentMetrics,
	config Config,
) *ExpiryCleaner {
	return &ExpiryCleaner{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		config:       config.withDefaults(),
	}
}

// CleanExpiredTransactions removes expired transactions batch by batch until a
// batch comes back short. Cancellation is honored between batches; a batch in
// progress always runs to commit or rollback.
func (c *ExpiryCleaner) CleanExpiredTransactions(ctx context.Context) (int, error) {
	start := c.timeProvider.Now()
	total := 0

	defer func() {
		c.metrics.ObserveCleanupDuration(c.timeProvider.Since(start))
	}()

	for {
		deleted, err := c.CleanBatch(context.WithoutCancel(ctx))
		total += deleted
		if err != nil {
			c.logger.Error("Expired transaction cleanup failed", map[string]any{
				"deleted": total,
				"error":   err.Error(),
			})
			return total, err
		}

		if deleted < c.config.BatchSize {
			break
		}

		if err := ctx.Err(); err != nil {
			c.logger.Info("Cleanup interrupted between batches", map[string]any{
				"deleted": total,
			})
			return total, err
		}
	}

	if total > 0 {
		c.logger.Info("Expired transactions removed", map[string]any{
			"deleted": total,
			"max_age": c.config.MaxAge.String(),
		})
	} else {
		c.logger.Debug("No expired transactions", nil)
	}
	return total, nil
}

// CleanBatch selects and deletes at most BatchSize expired transactions in a
// single database transaction and returns how many were deleted.
func (c *ExpiryCleaner) CleanBatch(ctx context.Context) (int, error) {
	cutoff := c.timeProvider.Now().Add(-c.config.MaxAge)

	var deleted int64
	err := c.uow.Execute(ctx, func(txCtx context.Context) error {
		deleted = 0
		repo := c.uow.GetExpiredTransactionRepository(txCtx)

		ids, err := repo.SelectExpiredForDeletion(txCtx, cutoff, c.config.KeepStatuses, c.config.BatchSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		deleted, err = repo.DeleteByIDs(txCtx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		c.metrics.AddTransactionsCleaned(int(deleted))
		c.logger.Debug("Deleted batch of expired transactions", map[string]any{
			"count":  deleted,
			"cutoff": cutoff,
		})
	}
	return int(deleted), nil
}

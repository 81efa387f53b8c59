package cleaner

import (
	"context"
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	persistencemocks "github.com/contactbot/payment-processor/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cleanerFixture struct {
	uow     *persistencemocks.MockUnitOfWork
	repo    *persistencemocks.MockExpiredTransactionRepository
	metrics *coremocks.MockPaymentMetrics
}

func newCleanerFixture(t *testing.T, now time.Time, config Config) (*ExpiryCleaner, cleanerFixture) {
	f := cleanerFixture{
		uow:     persistencemocks.NewMockUnitOfWork(t),
		repo:    persistencemocks.NewMockExpiredTransactionRepository(t),
		metrics: coremocks.NewMockPaymentMetrics(t),
	}

	f.uow.EXPECT().Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).Maybe()
	f.uow.EXPECT().GetExpiredTransactionRepository(mock.Anything).Return(f.repo).Maybe()
	f.metrics.EXPECT().ObserveCleanupDuration(mock.Anything).Maybe()

	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(now).Maybe()
	mockTime.EXPECT().Since(mock.Anything).Return(time.Second).Maybe()

	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	return NewExpiryCleaner(f.uow, mockTime, logger, f.metrics, config), f
}

func TestCleanExpiredTransactions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-10 * time.Minute)
	keep := []entity.TransactionStatus{entity.StatusConfirmed, entity.StatusRefunded}

	t.Run("Drains full batches until a short one", func(t *testing.T) {
		cleaner, f := newCleanerFixture(t, now, Config{BatchSize: 2, MaxAge: 10 * time.Minute})

		f.repo.EXPECT().SelectExpiredForDeletion(mock.Anything, cutoff, keep, 2).Return([]string{"a", "b"}, nil).Once()
		f.repo.EXPECT().DeleteByIDs(mock.Anything, []string{"a", "b"}).Return(int64(2), nil).Once()
		f.repo.EXPECT().SelectExpiredForDeletion(mock.Anything, cutoff, keep, 2).Return([]string{"c"}, nil).Once()
		f.repo.EXPECT().DeleteByIDs(mock.Anything, []string{"c"}).Return(int64(1), nil).Once()
		f.metrics.EXPECT().AddTransactionsCleaned(2).Once()
		f.metrics.EXPECT().AddTransactionsCleaned(1).Once()

		deleted, err := cleaner.CleanExpiredTransactions(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, deleted)
	})

	t.Run("Nothing expired", func(t *testing.T) {
		cleaner, f := newCleanerFixture(t, now, Config{})

		f.repo.EXPECT().SelectExpiredForDeletion(mock.Anything, cutoff, keep, DefaultBatchSize).Return(nil, nil).Once()

		deleted, err := cleaner.CleanExpiredTransactions(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, deleted)
		f.repo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
	})

	t.Run("Empty keep list falls back to the defaults", func(t *testing.T) {
		cleaner, f := newCleanerFixture(t, now, Config{KeepStatuses: []entity.TransactionStatus{}})

		f.repo.EXPECT().SelectExpiredForDeletion(mock.Anything, cutoff, keep, DefaultBatchSize).Return([]string{"a"}, nil).Once()
		f.repo.EXPECT().DeleteByIDs(mock.Anything, []string{"a"}).Return(int64(1), nil).Once()
		f.metrics.EXPECT().AddTransactionsCleaned(1).Once()

		deleted, err := cleaner.CleanExpiredTransactions(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})

	t.Run("Cancellation stops between batches", func(t *testing.T) {
		cleaner, f := newCleanerFixture(t, now, Config{BatchSize: 1})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f.repo.EXPECT().SelectExpiredForDeletion(mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), cutoff, keep, 1).Return([]string{"a"}, nil).Once()
		f.repo.EXPECT().DeleteByIDs(mock.Anything, []string{"a"}).Return(int64(1), nil).Once()
		f.metrics.EXPECT().AddTransactionsCleaned(1).Once()

		deleted, err := cleaner.CleanExpiredTransactions(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, deleted)
	})

	t.Run("Store failure aborts the pass", func(t *testing.T) {
		cleaner, f := newCleanerFixture(t, now, Config{})

		f.repo.EXPECT().SelectExpiredForDeletion(mock.Anything, cutoff, keep, DefaultBatchSize).
			Return(nil, errs.ErrDatabaseConnection).Once()

		deleted, err := cleaner.CleanExpiredTransactions(context.Background())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, 0, deleted)
	})
}

func TestConfigDefaults(t *testing.T) {
	config := Config{}.withDefaults()

	assert.Equal(t, DefaultBatchSize, config.BatchSize)
	assert.Equal(t, DefaultMaxAge, config.MaxAge)
	assert.Equal(t, DefaultKeepStatuses, config.KeepStatuses)

	explicit := Config{BatchSize: 5, MaxAge: time.Hour, KeepStatuses: []entity.TransactionStatus{}}.withDefaults()
	assert.Equal(t, 5, explicit.BatchSize)
	assert.Equal(t, time.Hour, explicit.MaxAge)
	assert.Equal(t, DefaultKeepStatuses, explicit.KeepStatuses)
}

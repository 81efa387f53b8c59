package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	"github.com/contactbot/payment-processor/internal/domain/port/persistence"
	"github.com/contactbot/payment-processor/internal/domain/signature"
	"github.com/contactbot/payment-processor/internal/domain/usecase/cleaner"
	"github.com/contactbot/payment-processor/internal/domain/usecase/payment"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/database"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/logger"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/metrics"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/model"
	gatewaymocks "github.com/contactbot/payment-processor/mocks/port/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationSecret = "terminal-password"

func setupIntegrationDB(t *testing.T) (*database.TestDBManager, persistence.UnitOfWork) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	m := database.NewTestDBManager(t, logger.NewNoopLogger())
	m.Connect(t)
	m.SetupTestDB(t)
	return m, m.Manager.CreateUnitOfWork()
}

func countTransactions(t *testing.T, m *database.TestDBManager, id string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, m.Manager.DB().Model(&model.Transaction{}).Where("id = ?", id).Count(&count).Error)
	return count
}

func TestUnitOfWorkIntegration(t *testing.T) {
	m, uow := setupIntegrationDB(t)
	ctx := context.Background()
	userID := m.CreateTestUser(t, 1001)

	t.Run("Error rolls back every write in the scope", func(t *testing.T) {
		boom := errors.New("boom")
		err := uow.Execute(ctx, func(txCtx context.Context) error {
			err := uow.GetTransactionRepository(txCtx).Create(txCtx, &entity.Transaction{
				ID: "rolled-back", PaymentID: "1", UserID: userID, Amount: 3000,
				Status: entity.StatusNew, CreatedAt: time.Now(),
			})
			require.NoError(t, err)
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Zero(t, countTransactions(t, m, "rolled-back"))
	})

	t.Run("Panic rolls back and propagates", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = uow.Execute(ctx, func(txCtx context.Context) error {
				_ = uow.GetTransactionRepository(txCtx).Create(txCtx, &entity.Transaction{
					ID: "panicked", PaymentID: "1", UserID: userID, Amount: 3000,
					Status: entity.StatusNew, CreatedAt: time.Now(),
				})
				panic("boom")
			})
		})
		assert.Zero(t, countTransactions(t, m, "panicked"))
	})

	t.Run("Success commits", func(t *testing.T) {
		err := uow.Execute(ctx, func(txCtx context.Context) error {
			return uow.GetTransactionRepository(txCtx).Create(txCtx, &entity.Transaction{
				ID: "committed", PaymentID: "1", UserID: userID, Amount: 3000,
				Status: entity.StatusNew, CreatedAt: time.Now(),
			})
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), countTransactions(t, m, "committed"))
	})
}

func TestTransactionRepositoryIntegration(t *testing.T) {
	m, uow := setupIntegrationDB(t)
	ctx := context.Background()
	userID := m.CreateTestUser(t, 2002)
	repo := uow.GetTransactionRepository(ctx)
	email := "buyer@example.com"

	require.NoError(t, repo.Create(ctx, &entity.Transaction{
		ID: "order-1", PaymentID: "111", UserID: userID, Amount: 3000,
		Status: entity.StatusNew, Email: &email, CreatedAt: time.Now(),
	}))

	t.Run("Duplicate id is a conflict", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Transaction{
			ID: "order-1", PaymentID: "222", UserID: userID, Amount: 3000,
			Status: entity.StatusNew, CreatedAt: time.Now(),
		})
		assert.True(t, errs.IsDuplicateTransactionError(err))
	})

	t.Run("Unknown owner is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Transaction{
			ID: "order-2", PaymentID: "222", UserID: "00000000-0000-0000-0000-000000000000", Amount: 3000,
			Status: entity.StatusNew, CreatedAt: time.Now(),
		})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Empty update persists nothing", func(t *testing.T) {
		updated, err := repo.UpdateFields(ctx, "order-1", entity.TransactionUpdate{})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Update returns the stored row", func(t *testing.T) {
		status := entity.StatusConfirmed
		paymentID := "333"
		updated, err := repo.UpdateFields(ctx, "order-1", entity.TransactionUpdate{PaymentID: &paymentID, Status: &status})

		require.NoError(t, err)
		assert.Equal(t, entity.StatusConfirmed, updated.Status)
		assert.Equal(t, "333", updated.PaymentID)
		assert.Equal(t, int64(3000), updated.Amount)
		assert.Equal(t, userID, updated.UserID)
		require.NotNil(t, updated.Email)
		assert.Equal(t, email, *updated.Email)
	})

	t.Run("Update of an unknown id", func(t *testing.T) {
		status := entity.StatusConfirmed
		_, err := repo.UpdateFields(ctx, "missing", entity.TransactionUpdate{Status: &status})
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Owner is resolved through the transaction", func(t *testing.T) {
		user, err := uow.GetUserRepository(ctx).GetByTransactionID(ctx, "order-1")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, int64(2002), user.TelegramID)

		_, err = uow.GetUserRepository(ctx).GetByTransactionID(ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func newIntegrationCleaner(uow persistence.UnitOfWork, m *database.TestDBManager, batchSize int) *cleaner.ExpiryCleaner {
	return cleaner.NewExpiryCleaner(uow, m.TimeProvider, logger.NewNoopLogger(), metrics.NewNoopMetrics(), cleaner.Config{
		BatchSize: batchSize,
		MaxAge:    10 * time.Minute,
	})
}

// slowUnitOfWork holds every cleanup batch open between select and delete
type slowUnitOfWork struct {
	persistence.UnitOfWork
	delay time.Duration
}

func (u slowUnitOfWork) GetExpiredTransactionRepository(ctx context.Context) persistence.ExpiredTransactionRepository {
	return slowExpiredRepository{
		ExpiredTransactionRepository: u.UnitOfWork.GetExpiredTransactionRepository(ctx),
		delay:                        u.delay,
	}
}

type slowExpiredRepository struct {
	persistence.ExpiredTransactionRepository
	delay time.Duration
}

func (r slowExpiredRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	time.Sleep(r.delay)
	return r.ExpiredTransactionRepository.DeleteByIDs(ctx, ids)
}

func TestExpiryCleanerIntegration(t *testing.T) {
	m, uow := setupIntegrationDB(t)
	ctx := context.Background()
	userID := m.CreateTestUser(t, 3003)
	old := time.Now().Add(-time.Hour)

	t.Run("Deletes old pending rows and keeps confirmed and young ones", func(t *testing.T) {
		oldNew := m.CreateTestTransaction(t, userID, string(entity.StatusNew), old)
		oldRejected := m.CreateTestTransaction(t, userID, string(entity.StatusRejected), old)
		oldConfirmed := m.CreateTestTransaction(t, userID, string(entity.StatusConfirmed), old)
		oldRefunded := m.CreateTestTransaction(t, userID, string(entity.StatusRefunded), old)
		youngNew := m.CreateTestTransaction(t, userID, string(entity.StatusNew), time.Now())

		deleted, err := newIntegrationCleaner(uow, m, 1000).CleanExpiredTransactions(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, deleted)
		assert.Zero(t, countTransactions(t, m, oldNew))
		assert.Zero(t, countTransactions(t, m, oldRejected))
		assert.Equal(t, int64(1), countTransactions(t, m, oldConfirmed))
		assert.Equal(t, int64(1), countTransactions(t, m, oldRefunded))
		assert.Equal(t, int64(1), countTransactions(t, m, youngNew))
	})

	t.Run("Concurrent batches delete each row exactly once", func(t *testing.T) {
		const eligible = 40
		for i := 0; i < eligible; i++ {
			m.CreateTestTransaction(t, userID, string(entity.StatusNew), old.Add(-time.Duration(i)*time.Second))
		}

		expiry := newIntegrationCleaner(slowUnitOfWork{UnitOfWork: uow, delay: 50 * time.Millisecond}, m, 5)
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			total int
		)
		start := make(chan struct{})
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				deleted, err := expiry.CleanExpiredTransactions(ctx)
				assert.NoError(t, err)
				mu.Lock()
				total += deleted
				mu.Unlock()
			}()
		}
		close(start)

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(30 * time.Second):
			t.Fatal("concurrent cleaners did not finish")
		}

		assert.Equal(t, eligible, total)
	})

	t.Run("Empty keep list deletes nothing", func(t *testing.T) {
		confirmed := m.CreateTestTransaction(t, userID, string(entity.StatusConfirmed), old)

		err := uow.Execute(ctx, func(txCtx context.Context) error {
			_, err := uow.GetExpiredTransactionRepository(txCtx).
				SelectExpiredForDeletion(txCtx, time.Now().Add(-10*time.Minute), []entity.TransactionStatus{}, 100)
			return err
		})

		assert.ErrorIs(t, err, errs.ErrNoKeepStatuses)
		assert.Equal(t, int64(1), countTransactions(t, m, confirmed))
	})

	t.Run("Row locked by a webhook is skipped", func(t *testing.T) {
		locked := m.CreateTestTransaction(t, userID, string(entity.StatusNew), old)
		free := m.CreateTestTransaction(t, userID, string(entity.StatusNew), old)

		holding := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- uow.Execute(ctx, func(txCtx context.Context) error {
				if _, err := uow.GetTransactionRepository(txCtx).GetByIDForUpdate(txCtx, locked); err != nil {
					return err
				}
				close(holding)
				<-release
				return nil
			})
		}()
		<-holding

		var ids []string
		err := uow.Execute(ctx, func(txCtx context.Context) error {
			var err error
			ids, err = uow.GetExpiredTransactionRepository(txCtx).
				SelectExpiredForDeletion(txCtx, time.Now().Add(-10*time.Minute), cleaner.DefaultKeepStatuses, 100)
			return err
		})
		close(release)
		require.NoError(t, <-done)

		require.NoError(t, err)
		assert.Contains(t, ids, free)
		assert.NotContains(t, ids, locked)
	})
}

func TestWebhookIntegration(t *testing.T) {
	m, uow := setupIntegrationDB(t)
	ctx := context.Background()
	userID := m.CreateTestUser(t, 4004)
	orderID := m.CreateTestTransaction(t, userID, string(entity.StatusNew), time.Now())

	processor := payment.NewWebhookProcessor(
		uow,
		gatewaymocks.NewMockPaymentGateway(t),
		nil,
		m.TimeProvider,
		logger.NewNoopLogger(),
		metrics.NewNoopMetrics(),
		payment.Config{TerminalPassword: integrationSecret, GrantDays: 30},
	)

	notification := func(status entity.TransactionStatus, secret string) *entity.PaymentNotification {
		n := &entity.PaymentNotification{
			OrderID:   orderID,
			Status:    status,
			PaymentID: "7654321",
			Raw:       []byte(`{"OrderId":"` + orderID + `"}`),
		}
		n.Token = signature.Token(n.SigningPayload(), secret)
		return n
	}

	readStatus := func() string {
		var row model.Transaction
		require.NoError(t, m.Manager.DB().Where("id = ?", orderID).Take(&row).Error)
		return row.Status
	}
	readExpiry := func() *time.Time {
		var row model.User
		require.NoError(t, m.Manager.DB().Where("id = ?", userID).Take(&row).Error)
		return row.SubscriptionExpirationDate
	}

	t.Run("Forged token leaves the transaction NEW", func(t *testing.T) {
		result, err := processor.ProcessNotification(ctx, notification(entity.StatusConfirmed, "wrong"))

		assert.ErrorIs(t, err, errs.ErrInvalidToken)
		assert.Equal(t, entity.OutcomeUnauthorized, result.Outcome)
		assert.Equal(t, string(entity.StatusNew), readStatus())
		assert.Nil(t, readExpiry())
	})

	t.Run("Confirmation grants the subscription", func(t *testing.T) {
		before := time.Now()
		result, err := processor.ProcessNotification(ctx, notification(entity.StatusConfirmed, integrationSecret))

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeAccepted, result.Outcome)
		assert.Equal(t, string(entity.StatusConfirmed), readStatus())

		expiry := readExpiry()
		require.NotNil(t, expiry)
		assert.WithinRange(t, *expiry, before.AddDate(0, 0, 30).Add(-time.Second), time.Now().AddDate(0, 0, 30).Add(time.Second))
	})

	t.Run("Duplicate confirmation keeps the expiration", func(t *testing.T) {
		first := readExpiry()

		result, err := processor.ProcessNotification(ctx, notification(entity.StatusConfirmed, integrationSecret))

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeDuplicate, result.Outcome)
		assert.True(t, first.Equal(*readExpiry()))
	})

	t.Run("Every delivery is audited", func(t *testing.T) {
		var outcomes []string
		require.NoError(t, m.Manager.DB().Model(&model.PaymentNotification{}).
			Where("order_id = ?", orderID).Order("received_at").Pluck("outcome", &outcomes).Error)

		assert.Equal(t, []string{"unauthorized", "accepted", "duplicate"}, outcomes)
	})
}

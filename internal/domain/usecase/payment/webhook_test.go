package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	"github.com/contactbot/payment-processor/internal/domain/port/messaging"
	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	gatewaymocks "github.com/contactbot/payment-processor/mocks/port/gateway"
	messagingmocks "github.com/contactbot/payment-processor/mocks/port/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	repos     testRepos
	gateway   *gatewaymocks.MockPaymentGateway
	publisher *messagingmocks.MockEventPublisher
	metrics   *coremocks.MockPaymentMetrics
	processor *WebhookProcessor
}

func newWebhookFixture(t *testing.T, now time.Time) webhookFixture {
	repos := newTestRepos(t)
	paymentGateway := gatewaymocks.NewMockPaymentGateway(t)
	publisher := messagingmocks.NewMockEventPublisher(t)
	metrics := coremocks.NewMockPaymentMetrics(t)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(now).Maybe()

	return webhookFixture{
		repos:     repos,
		gateway:   paymentGateway,
		publisher: publisher,
		metrics:   metrics,
		processor: NewWebhookProcessor(
			repos.uow, paymentGateway, publisher, mockTime, newQuietLogger(t), metrics, testConfig()),
	}
}

func TestProcessNotification(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	expectedExpiry := now.AddDate(0, 0, 30)
	email := "buyer@example.com"
	user := &entity.User{ID: "user-1", TelegramID: 42}

	transactionWith := func(status entity.TransactionStatus) *entity.Transaction {
		return &entity.Transaction{
			ID:        "order-1",
			PaymentID: "1234567",
			UserID:    "user-1",
			Amount:    3000,
			Status:    status,
			Email:     &email,
		}
	}

	t.Run("First confirmation grants the subscription", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(transactionWith(entity.StatusNew), nil).Once()
		f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
			Return(transactionWith(entity.StatusConfirmed), nil).Once()
		f.repos.users.EXPECT().UpdateFields(mock.Anything, "user-1", mock.MatchedBy(func(u entity.UserUpdate) bool {
			return u.SubscriptionExpirationDate != nil && u.SubscriptionExpirationDate.Equal(expectedExpiry)
		})).Return(user, nil).Once()
		f.publisher.EXPECT().PublishSubscriptionGranted(mock.Anything, mock.MatchedBy(func(e messaging.SubscriptionGrantedEvent) bool {
			return e.UserID == "user-1" && e.TelegramID == 42 && e.TransactionID == "order-1" && e.ExpiresAt.Equal(expectedExpiry)
		})).Return(nil).Once()
		f.gateway.EXPECT().SendClosingReceipt(mock.Anything, "1234567", mock.MatchedBy(func(r entity.Receipt) bool {
			return r.Email == email && len(r.Items) == 1 && r.Items[0].Amount == 3000
		})).Return(true, nil).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeAccepted)).Return(nil).Once()
		f.metrics.EXPECT().IncSubscriptionGranted().Once()
		f.metrics.EXPECT().IncNotification("accepted").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeAccepted, result.Outcome)
	})

	t.Run("Repeated confirmation does not extend the subscription again", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(transactionWith(entity.StatusConfirmed), nil).Once()
		f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
			Return(transactionWith(entity.StatusConfirmed), nil).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeDuplicate)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("duplicate").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeDuplicate, result.Outcome)
		f.repos.users.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non-confirming status is stored without a grant", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusRejected)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(transactionWith(entity.StatusNew), nil).Once()
		f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
			Return(transactionWith(entity.StatusRejected), nil).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeAccepted)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("accepted").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeAccepted, result.Outcome)
	})

	t.Run("Invalid token is rejected without touching state", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)
		n.Token = "forged"

		f.repos.notifications.EXPECT().Record(mock.Anything, mock.MatchedBy(func(r *entity.NotificationRecord) bool {
			return r.Outcome == entity.OutcomeUnauthorized && r.Error != ""
		})).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("unauthorized").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		assert.ErrorIs(t, err, errs.ErrInvalidToken)
		assert.True(t, errs.IsAuthenticationError(err))
		assert.Equal(t, entity.OutcomeUnauthorized, result.Outcome)
	})

	t.Run("Tampered field invalidates the token", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusRejected)
		n.Status = entity.StatusConfirmed

		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeUnauthorized)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("unauthorized").Once()

		_, err := f.processor.ProcessNotification(ctx, n)

		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Unknown transaction is acknowledged and ignored", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").
			Return(nil, errs.ErrTransactionNotFound).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeIgnored)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("ignored").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeIgnored, result.Outcome)
	})

	t.Run("Row missing under lock is an integrity error", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(nil, errs.ErrTransactionNotFound).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeFailed)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("failed").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		assert.True(t, errs.IsIntegrityError(err))
		assert.Equal(t, errs.CodeIntegrity, errs.ErrorCode(err))
		assert.Equal(t, entity.OutcomeFailed, result.Outcome)
	})

	t.Run("Update that finds no row is an integrity error", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(transactionWith(entity.StatusNew), nil).Once()
		f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
			Return(nil, errs.ErrTransactionNotFound).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeFailed)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("failed").Once()

		_, err := f.processor.ProcessNotification(ctx, n)

		assert.True(t, errs.IsIntegrityError(err))
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Store failure is returned for a retry", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").
			Return(nil, errs.ErrDatabaseConnection).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeFailed)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("failed").Once()

		_, err := f.processor.ProcessNotification(ctx, n)

		assert.True(t, errs.IsStoreError(err))
		assert.False(t, errs.IsIntegrityError(err))
	})

	t.Run("Failed grant rolls back as a store error", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(transactionWith(entity.StatusNew), nil).Once()
		f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
			Return(transactionWith(entity.StatusConfirmed), nil).Once()
		f.repos.users.EXPECT().UpdateFields(mock.Anything, "user-1", mock.Anything).
			Return(nil, errs.ErrDatabaseConnection).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeFailed)).Return(nil).Once()
		f.metrics.EXPECT().IncNotification("failed").Once()

		_, err := f.processor.ProcessNotification(ctx, n)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("Receipt and event failures do not fail the delivery", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
		f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
			Return(transactionWith(entity.StatusNew), nil).Once()
		f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
			Return(transactionWith(entity.StatusConfirmed), nil).Once()
		f.repos.users.EXPECT().UpdateFields(mock.Anything, "user-1", mock.Anything).Return(user, nil).Once()
		f.publisher.EXPECT().PublishSubscriptionGranted(mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable")).Once()
		f.gateway.EXPECT().SendClosingReceipt(mock.Anything, "1234567", mock.Anything).
			Return(false, errs.NewGatewayError("SendClosingReceipt", 502, "", "", nil)).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, recordWithOutcome(entity.OutcomeAccepted)).Return(nil).Once()
		f.metrics.EXPECT().IncSubscriptionGranted().Once()
		f.metrics.EXPECT().IncNotification("accepted").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeAccepted, result.Outcome)
	})

	t.Run("Audit log failure does not change the result", func(t *testing.T) {
		f := newWebhookFixture(t, now)
		n := signedNotification(entity.StatusConfirmed)

		f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").
			Return(nil, errs.ErrUserNotFound).Once()
		f.repos.notifications.EXPECT().Record(mock.Anything, mock.Anything).
			Return(errs.ErrDatabaseConnection).Once()
		f.metrics.EXPECT().IncNotification("ignored").Once()

		result, err := f.processor.ProcessNotification(ctx, n)

		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeIgnored, result.Outcome)
	})
}

func TestProcessNotificationWithoutReceipts(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newWebhookFixture(t, now)
	f.processor.config.SendReceipts = false
	n := signedNotification(entity.StatusConfirmed)
	user := &entity.User{ID: "user-1", TelegramID: 42}

	f.repos.users.EXPECT().GetByTransactionID(mock.Anything, "order-1").Return(user, nil).Once()
	f.repos.transactions.EXPECT().GetByIDForUpdate(mock.Anything, "order-1").
		Return(&entity.Transaction{ID: "order-1", PaymentID: "1234567", UserID: "user-1", Status: entity.StatusNew}, nil).Once()
	f.repos.transactions.EXPECT().UpdateFields(mock.Anything, "order-1", n.Update()).
		Return(&entity.Transaction{ID: "order-1", PaymentID: "1234567", UserID: "user-1", Status: entity.StatusConfirmed}, nil).Once()
	f.repos.users.EXPECT().UpdateFields(mock.Anything, "user-1", mock.Anything).Return(user, nil).Once()
	f.publisher.EXPECT().PublishSubscriptionGranted(mock.Anything, mock.Anything).Return(nil).Once()
	f.repos.notifications.EXPECT().Record(mock.Anything, mock.Anything).Return(nil).Once()
	f.metrics.EXPECT().IncSubscriptionGranted().Once()
	f.metrics.EXPECT().IncNotification("accepted").Once()

	_, err := f.processor.ProcessNotification(context.Background(), n)

	require.NoError(t, err)
	f.gateway.AssertNotCalled(t, "SendClosingReceipt", mock.Anything, mock.Anything, mock.Anything)
}

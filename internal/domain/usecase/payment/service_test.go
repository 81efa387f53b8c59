package payment

import (
	"context"
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	"github.com/contactbot/payment-processor/internal/domain/port/gateway"
	"github.com/contactbot/payment-processor/internal/domain/port/usecase"
	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	gatewaymocks "github.com/contactbot/payment-processor/mocks/port/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInitiatePayment(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	email := "buyer@example.com"
	user := &entity.User{ID: "user-1", TelegramID: 42}

	newService := func(t *testing.T) (*Service, testRepos, *gatewaymocks.MockPaymentGateway, *coremocks.MockPaymentMetrics) {
		repos := newTestRepos(t)
		paymentGateway := gatewaymocks.NewMockPaymentGateway(t)
		metrics := coremocks.NewMockPaymentMetrics(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()

		service := NewService(repos.uow, paymentGateway, mockTime, newQuietLogger(t), metrics, testConfig())
		service.newOrderID = func() string { return "order-1" }
		return service, repos, paymentGateway, metrics
	}

	t.Run("Successful init stores a NEW transaction", func(t *testing.T) {
		service, repos, paymentGateway, metrics := newService(t)

		repos.users.EXPECT().GetByTelegramID(mock.Anything, int64(42)).Return(user, nil).Once()
		paymentGateway.EXPECT().InitiatePayment(mock.Anything, mock.MatchedBy(func(req gateway.InitPaymentRequest) bool {
			return req.OrderID == "order-1" &&
				req.Amount == 3000 &&
				req.Description == "Subscription" &&
				req.Receipt != nil &&
				req.Receipt.Email == email
		})).Return(&gateway.InitPaymentResult{
			OrderID:    "order-1",
			PaymentID:  "1234567",
			Status:     entity.StatusNew,
			Amount:     3000,
			PaymentURL: "https://pay.example.com/new/abc",
		}, nil).Once()
		repos.transactions.EXPECT().Create(mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.ID == "order-1" &&
				tx.PaymentID == "1234567" &&
				tx.UserID == "user-1" &&
				tx.Status == entity.StatusNew &&
				tx.Amount == 3000 &&
				tx.CreatedAt.Equal(fixedTime)
		})).Return(nil).Once()
		metrics.EXPECT().IncPaymentInitiated("success").Once()

		result, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 42, Email: &email})

		require.NoError(t, err)
		assert.Equal(t, "order-1", result.OrderID)
		assert.Equal(t, "https://pay.example.com/new/abc", result.PaymentURL)
	})

	t.Run("No receipt without an email", func(t *testing.T) {
		service, repos, paymentGateway, metrics := newService(t)

		repos.users.EXPECT().GetByTelegramID(mock.Anything, int64(42)).Return(user, nil).Once()
		paymentGateway.EXPECT().InitiatePayment(mock.Anything, mock.MatchedBy(func(req gateway.InitPaymentRequest) bool {
			return req.Receipt == nil
		})).Return(&gateway.InitPaymentResult{
			OrderID: "order-1", PaymentID: "1", Status: entity.StatusNew, Amount: 3000, PaymentURL: "https://pay.example.com/x",
		}, nil).Once()
		repos.transactions.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
		metrics.EXPECT().IncPaymentInitiated("success").Once()

		_, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 42})

		require.NoError(t, err)
	})

	t.Run("Invalid telegram id", func(t *testing.T) {
		service, _, _, metrics := newService(t)
		metrics.EXPECT().IncPaymentInitiated("invalid_request").Once()

		result, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 0})

		assert.Equal(t, errs.ErrInvalidUserID, err)
		assert.Nil(t, result)
	})

	t.Run("Unknown user never reaches the gateway", func(t *testing.T) {
		service, repos, _, metrics := newService(t)

		repos.users.EXPECT().GetByTelegramID(mock.Anything, int64(42)).Return(nil, errs.ErrUserNotFound).Once()
		metrics.EXPECT().IncPaymentInitiated("unknown_user").Once()

		result, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 42})

		assert.True(t, errs.IsUserNotFoundError(err))
		assert.Nil(t, result)
	})

	t.Run("Gateway failure stores nothing", func(t *testing.T) {
		service, repos, paymentGateway, metrics := newService(t)

		repos.users.EXPECT().GetByTelegramID(mock.Anything, int64(42)).Return(user, nil).Once()
		paymentGateway.EXPECT().InitiatePayment(mock.Anything, mock.Anything).
			Return(nil, errs.NewGatewayError("Init", 200, "9999", "terminal blocked", nil)).Once()
		metrics.EXPECT().IncPaymentInitiated("gateway_error").Once()

		result, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 42})

		assert.True(t, errs.IsGatewayError(err))
		assert.Nil(t, result)
		repos.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Echoed order id must match", func(t *testing.T) {
		service, repos, paymentGateway, metrics := newService(t)

		repos.users.EXPECT().GetByTelegramID(mock.Anything, int64(42)).Return(user, nil).Once()
		paymentGateway.EXPECT().InitiatePayment(mock.Anything, mock.Anything).Return(&gateway.InitPaymentResult{
			OrderID: "someone-else", PaymentID: "1", Status: entity.StatusNew, Amount: 3000, PaymentURL: "https://pay.example.com/x",
		}, nil).Once()
		metrics.EXPECT().IncPaymentInitiated("gateway_error").Once()

		_, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 42})

		assert.True(t, errs.IsGatewayError(err))
	})

	t.Run("Store failure after init", func(t *testing.T) {
		service, repos, paymentGateway, metrics := newService(t)

		repos.users.EXPECT().GetByTelegramID(mock.Anything, int64(42)).Return(user, nil).Once()
		paymentGateway.EXPECT().InitiatePayment(mock.Anything, mock.Anything).Return(&gateway.InitPaymentResult{
			OrderID: "order-1", PaymentID: "1", Status: entity.StatusNew, Amount: 3000, PaymentURL: "https://pay.example.com/x",
		}, nil).Once()
		repos.transactions.EXPECT().Create(mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection).Once()
		metrics.EXPECT().IncPaymentInitiated("store_error").Once()

		_, err := service.InitiatePayment(ctx, usecase.InitiatePaymentRequest{TelegramID: 42})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

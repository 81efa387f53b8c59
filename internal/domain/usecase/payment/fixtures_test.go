package payment

import (
	"context"
	"testing"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	"github.com/contactbot/payment-processor/internal/domain/signature"
	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	persistencemocks "github.com/contactbot/payment-processor/mocks/port/persistence"
	"github.com/stretchr/testify/mock"
)

const testSecret = "terminal-password"

// testRepos bundles the repository mocks served by the unit of work mock
type testRepos struct {
	uow           *persistencemocks.MockUnitOfWork
	users         *persistencemocks.MockUserRepository
	transactions  *persistencemocks.MockTransactionRepository
	notifications *persistencemocks.MockNotificationRepository
}

func newTestRepos(t *testing.T) testRepos {
	r := testRepos{
		uow:           persistencemocks.NewMockUnitOfWork(t),
		users:         persistencemocks.NewMockUserRepository(t),
		transactions:  persistencemocks.NewMockTransactionRepository(t),
		notifications: persistencemocks.NewMockNotificationRepository(t),
	}

	r.uow.EXPECT().Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).Maybe()
	r.uow.EXPECT().GetUserRepository(mock.Anything).Return(r.users).Maybe()
	r.uow.EXPECT().GetTransactionRepository(mock.Anything).Return(r.transactions).Maybe()
	r.uow.EXPECT().GetNotificationRepository(mock.Anything).Return(r.notifications).Maybe()

	return r
}

// newQuietLogger accepts any log call
func newQuietLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().With(mock.Anything).Return(logger).Maybe()
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func testConfig() Config {
	return Config{
		Amount:           3000,
		Description:      "Subscription",
		NotificationURL:  "https://bot.example.com/api/v2/Notification",
		TerminalPassword: testSecret,
		GrantDays:        30,
		SendReceipts:     true,
		Receipt: entity.ReceiptTemplate{
			Taxation:      "usn_income",
			ItemName:      "Subscription",
			Tax:           "none",
			PaymentMethod: "full_payment",
			PaymentObject: "service",
		},
	}
}

// signedNotification builds a notification carrying a valid token
func signedNotification(status entity.TransactionStatus) *entity.PaymentNotification {
	terminal := "TERM"
	amount := int64(3000)
	success := status != entity.StatusRejected

	n := &entity.PaymentNotification{
		TerminalKey: &terminal,
		Amount:      &amount,
		OrderID:     "order-1",
		Success:     &success,
		Status:      status,
		PaymentID:   "1234567",
		Raw:         []byte(`{"OrderId":"order-1"}`),
	}
	n.Token = signature.Token(n.SigningPayload(), testSecret)
	return n
}

func recordWithOutcome(outcome entity.NotificationOutcome) interface{} {
	return mock.MatchedBy(func(record *entity.NotificationRecord) bool {
		return record.Outcome == outcome && record.OrderID == "order-1"
	})
}

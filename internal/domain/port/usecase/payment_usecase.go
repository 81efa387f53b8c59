package usecase

import (
	"context"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// InitiatePaymentRequest asks for a payment link for a bot user
type InitiatePaymentRequest struct {
	TelegramID int64
	Email      *string
}

// InitiatePaymentResult is returned to the bot after a successful init
type InitiatePaymentResult struct {
	OrderID    string
	PaymentURL string
}

// PaymentUseCase opens payments for users
type PaymentUseCase interface {
	// InitiatePayment assigns an order ID, opens the payment at the gateway and
	// stores the NEW transaction
	//
	// Possible errors:
	// - ErrInvalidUserID: If the telegram ID is not positive
	// - ErrUserNotFound: If no user has the telegram ID
	// - ErrGateway: If the gateway call fails
	// - ErrDuplicateTransaction, ErrDatabaseConnection: If storing the transaction fails
	InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResult, error)
}

// NotificationResult tells the transport how a notification was handled
type NotificationResult struct {
	Outcome entity.NotificationOutcome
}

// NotificationUseCase applies gateway notifications
type NotificationUseCase interface {
	// ProcessNotification authenticates and applies one notification
	//
	// Possible errors:
	// - ErrInvalidToken: If the token does not match
	// - ErrIntegrity: If the authenticated notification cannot be applied
	// - ErrDatabaseConnection: If the store fails
	ProcessNotification(ctx context.Context, notification *entity.PaymentNotification) (NotificationResult, error)
}

package gateway

import (
	"context"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// InitPaymentRequest describes a payment to open at the gateway
type InitPaymentRequest struct {
	OrderID         string
	Amount          int64
	Description     string
	NotificationURL string
	Receipt         *entity.Receipt
}

// InitPaymentResult is the validated gateway answer to an init call
type InitPaymentResult struct {
	OrderID    string
	PaymentID  string
	Status     entity.TransactionStatus
	Amount     int64
	PaymentURL string
}

// PaymentGateway is the outbound side of the acquiring protocol.
// Every call is signed; every answer is validated before it is returned.
type PaymentGateway interface {
	// InitiatePayment opens a payment and returns the page the user pays on
	//
	// Possible errors:
	// - ErrGateway: transport failure, non-success answer or invalid response body
	InitiatePayment(ctx context.Context, req InitPaymentRequest) (*InitPaymentResult, error)

	// SendClosingReceipt sends the fiscal receipt for a confirmed payment
	//
	// Possible errors:
	// - ErrGateway: transport failure, non-success answer or invalid response body
	SendClosingReceipt(ctx context.Context, paymentID string, receipt entity.Receipt) (bool, error)
}

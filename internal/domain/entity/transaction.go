package entity

import (
	"time"

	errs "github.com/contactbot/payment-processor/internal/domain/error"
	tport "github.com/contactbot/payment-processor/internal/domain/port/core"
)

// Column limits shared with the gateway schema
const (
	MaxTransactionIDLength = 36
	MaxPaymentIDLength     = 20
	MaxStatusLength        = 20
)

// TransactionStatus is a gateway-defined payment status. Only StatusConfirmed
// carries meaning for this service; the rest are stored as opaque tokens.
type TransactionStatus string

// TransactionStatus constants
const (
	StatusNew       TransactionStatus = "NEW"
	StatusConfirmed TransactionStatus = "CONFIRMED"
	StatusRejected  TransactionStatus = "REJECTED"
	StatusRefunded  TransactionStatus = "REFUNDED"
	StatusCanceled  TransactionStatus = "CANCELED"
)

// IsConfirmed reports whether the status grants the subscription
func (s TransactionStatus) IsConfirmed() bool {
	return s == StatusConfirmed
}

// Transaction is a single payment attempt of a user
type Transaction struct {
	ID        string            // Order identifier, assigned before the gateway round trip
	PaymentID string            // Gateway payment identifier
	UserID    string            // Owning user
	Amount    int64             // Smallest currency unit
	Status    TransactionStatus // Last status reported by the gateway
	Email     *string           // Receipt recipient
	CreatedAt time.Time
}

// NewTransaction creates a new transaction with basic validation
func NewTransaction(
	id string,
	paymentID string,
	userID string,
	amount int64,
	status TransactionStatus,
	email *string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if id == "" || len(id) > MaxTransactionIDLength {
		return nil, errs.ErrInvalidTransactionID
	}
	if paymentID == "" || len(paymentID) > MaxPaymentIDLength {
		return nil, errs.ErrInvalidPaymentID
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if amount < 0 {
		return nil, errs.ErrInvalidAmount
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	return &Transaction{
		ID:        id,
		PaymentID: paymentID,
		UserID:    userID,
		Amount:    amount,
		Status:    status,
		Email:     email,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// TransactionUpdate is the only way to change a stored transaction.
// Fields left nil are not written.
type TransactionUpdate struct {
	PaymentID *string
	Status    *TransactionStatus
}

// IsEmpty reports whether the update carries nothing to persist
func (u TransactionUpdate) IsEmpty() bool {
	return u.PaymentID == nil && u.Status == nil
}

// Validate checks the non-nil fields against the column limits
func (u TransactionUpdate) Validate() error {
	if u.PaymentID != nil && (*u.PaymentID == "" || len(*u.PaymentID) > MaxPaymentIDLength) {
		return errs.ErrInvalidPaymentID
	}
	if u.Status != nil {
		return validateStatus(*u.Status)
	}
	return nil
}

// Apply returns a copy of the transaction with the update applied
func (t Transaction) Apply(u TransactionUpdate) Transaction {
	if u.PaymentID != nil {
		t.PaymentID = *u.PaymentID
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	return t
}

// ConfirmsPayment reports whether moving from previous to next is the first
// arrival at CONFIRMED. Repeated CONFIRMED deliveries return false.
func ConfirmsPayment(previous, next TransactionStatus) bool {
	return !previous.IsConfirmed() && next.IsConfirmed()
}

func validateStatus(status TransactionStatus) error {
	if status == "" || len(status) > MaxStatusLength {
		return errs.ErrInvalidStatus
	}
	return nil
}

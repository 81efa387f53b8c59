package entity

import (
	"github.com/contactbot/payment-processor/internal/domain/signature"
)

// PaymentNotification is a status callback sent by the gateway.
// Optional fields are nil when the gateway omitted them, which keeps them out
// of the token.
type PaymentNotification struct {
	TerminalKey *string
	Amount      *int64
	OrderID     string
	Success     *bool
	Status      TransactionStatus
	PaymentID   string
	ErrorCode   *string
	Message     *string
	Details     *string
	RebillID    *int64
	CardID      *int64
	Pan         *string
	ExpDate     *string
	Token       string
	HasData     bool   // DATA object present; never signed
	Raw         []byte // body as received, kept for the audit log
}

// SigningPayload lists the notification fields under their wire names
func (n *PaymentNotification) SigningPayload() signature.Payload {
	p := signature.Payload{}.
		Add("TerminalKey", signature.OptionalString(n.TerminalKey)).
		Add("Amount", signature.OptionalInt(n.Amount)).
		Add("OrderId", signature.String(n.OrderID)).
		Add("Success", signature.OptionalBool(n.Success)).
		Add("Status", signature.String(string(n.Status))).
		Add("PaymentId", signature.String(n.PaymentID)).
		Add("ErrorCode", signature.OptionalString(n.ErrorCode)).
		Add("Message", signature.OptionalString(n.Message)).
		Add("Details", signature.OptionalString(n.Details)).
		Add("RebillId", signature.OptionalInt(n.RebillID)).
		Add("CardId", signature.OptionalInt(n.CardID)).
		Add("Pan", signature.OptionalString(n.Pan)).
		Add("ExpDate", signature.OptionalString(n.ExpDate))
	if n.HasData {
		p = p.Add("DATA", signature.Excluded())
	}
	return p
}

// Update returns the transaction fields carried by the notification
func (n *PaymentNotification) Update() TransactionUpdate {
	paymentID := n.PaymentID
	status := n.Status
	return TransactionUpdate{
		PaymentID: &paymentID,
		Status:    &status,
	}
}

// NotificationOutcome records how a delivered notification was handled
type NotificationOutcome string

// NotificationOutcome constants
const (
	OutcomeAccepted     NotificationOutcome = "accepted"
	OutcomeDuplicate    NotificationOutcome = "duplicate"
	OutcomeUnauthorized NotificationOutcome = "unauthorized"
	OutcomeIgnored      NotificationOutcome = "ignored"
	OutcomeFailed       NotificationOutcome = "failed"
)

// NotificationRecord is an audit log entry for one delivery
type NotificationRecord struct {
	ID        string
	OrderID   string
	PaymentID string
	Status    TransactionStatus
	Outcome   NotificationOutcome
	Error     string
	Payload   []byte
}

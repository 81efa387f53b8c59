package dto

import (
	"encoding/json"

	"github.com/contactbot/payment-processor/internal/domain/entity"
)

// NotificationRequest mirrors the gateway notification schema. Optional
// fields are pointers so that an absent field stays out of the token.
type NotificationRequest struct {
	TerminalKey *string         `json:"TerminalKey" validate:"omitempty,max=20"`
	Amount      *int64          `json:"Amount"`
	OrderID     string          `json:"OrderId" validate:"required,max=36"`
	Success     *bool           `json:"Success"`
	Status      string          `json:"Status" validate:"required,max=20"`
	PaymentID   string          `json:"PaymentId" validate:"required,max=20"`
	ErrorCode   *string         `json:"ErrorCode" validate:"omitempty,max=20"`
	Message     *string         `json:"Message"`
	Details     *string         `json:"Details"`
	RebillID    *int64          `json:"RebillId"`
	CardID      *int64          `json:"CardId"`
	Pan         *string         `json:"Pan"`
	ExpDate     *string         `json:"ExpDate"`
	Token       string          `json:"Token" validate:"required"`
	Data        json.RawMessage `json:"DATA"`
}

// HasData reports whether a DATA object was sent
func (r *NotificationRequest) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}

// DataIsObject reports whether DATA, when present, is a JSON object
func (r *NotificationRequest) DataIsObject() bool {
	if !r.HasData() {
		return true
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(r.Data, &obj) == nil
}

// ToEntity converts the request into a domain notification keeping raw as the audit payload
func (r *NotificationRequest) ToEntity(raw []byte) *entity.PaymentNotification {
	return &entity.PaymentNotification{
		TerminalKey: r.TerminalKey,
		Amount:      r.Amount,
		OrderID:     r.OrderID,
		Success:     r.Success,
		Status:      entity.TransactionStatus(r.Status),
		PaymentID:   r.PaymentID,
		ErrorCode:   r.ErrorCode,
		Message:     r.Message,
		Details:     r.Details,
		RebillID:    r.RebillID,
		CardID:      r.CardID,
		Pan:         r.Pan,
		ExpDate:     r.ExpDate,
		Token:       r.Token,
		HasData:     r.HasData(),
		Raw:         raw,
	}
}

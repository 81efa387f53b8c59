package gateway

import (
	"github.com/contactbot/payment-processor/internal/domain/entity"
	"github.com/contactbot/payment-processor/internal/domain/signature"
)

// initRequest is the body of POST /Init
type initRequest struct {
	TerminalKey     string      `json:"TerminalKey"`
	Amount          int64       `json:"Amount"`
	OrderID         string      `json:"OrderId"`
	Description     string      `json:"Description,omitempty"`
	NotificationURL string      `json:"NotificationURL,omitempty"`
	Receipt         *receiptDTO `json:"Receipt,omitempty"`
	Token           string      `json:"Token"`
}

func (r *initRequest) signingPayload() signature.Payload {
	p := signature.Payload{}.
		Add("TerminalKey", signature.String(r.TerminalKey)).
		Add("Amount", signature.Int(r.Amount)).
		Add("OrderId", signature.String(r.OrderID))
	if r.Description != "" {
		p = p.Add("Description", signature.String(r.Description))
	}
	if r.NotificationURL != "" {
		p = p.Add("NotificationURL", signature.String(r.NotificationURL))
	}
	if r.Receipt != nil {
		p = p.Add("Receipt", signature.Excluded())
	}
	return p
}

// closingReceiptRequest is the body of POST /SendClosingReceipt
type closingReceiptRequest struct {
	TerminalKey string     `json:"TerminalKey"`
	PaymentID   string     `json:"PaymentId"`
	Receipt     receiptDTO `json:"Receipt"`
	Token       string     `json:"Token"`
}

func (r *closingReceiptRequest) signingPayload() signature.Payload {
	return signature.Payload{}.
		Add("TerminalKey", signature.String(r.TerminalKey)).
		Add("PaymentId", signature.String(r.PaymentID)).
		Add("Receipt", signature.Excluded())
}

type receiptDTO struct {
	Email    string           `json:"Email,omitempty"`
	Taxation string           `json:"Taxation"`
	Items    []receiptItemDTO `json:"Items"`
}

type receiptItemDTO struct {
	Name          string  `json:"Name"`
	Price         int64   `json:"Price"`
	Quantity      float64 `json:"Quantity"`
	Amount        int64   `json:"Amount"`
	Tax           string  `json:"Tax"`
	PaymentMethod string  `json:"PaymentMethod,omitempty"`
	PaymentObject string  `json:"PaymentObject,omitempty"`
}

func toReceiptDTO(r entity.Receipt) receiptDTO {
	items := make([]receiptItemDTO, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, receiptItemDTO{
			Name:          item.Name,
			Price:         item.Price,
			Quantity:      item.Quantity,
			Amount:        item.Amount,
			Tax:           item.Tax,
			PaymentMethod: item.PaymentMethod,
			PaymentObject: item.PaymentObject,
		})
	}
	return receiptDTO{
		Email:    r.Email,
		Taxation: r.Taxation,
		Items:    items,
	}
}

// baseResponse holds the fields every gateway answer carries
type baseResponse struct {
	Success     bool   `json:"Success"`
	ErrorCode   string `json:"ErrorCode" validate:"max=20"`
	TerminalKey string `json:"TerminalKey" validate:"max=20"`
	Message     string `json:"Message"`
	Details     string `json:"Details"`
}

func (r *baseResponse) base() *baseResponse {
	return r
}

type initResponse struct {
	baseResponse
	Status     string `json:"Status" validate:"required,max=20"`
	PaymentID  string `json:"PaymentId" validate:"required,max=20"`
	OrderID    string `json:"OrderId" validate:"required,max=36"`
	Amount     int64  `json:"Amount" validate:"gte=0"`
	PaymentURL string `json:"PaymentURL" validate:"required,url"`
}

type closingReceiptResponse struct {
	baseResponse
}

// response is implemented by every decoded answer
type response interface {
	base() *baseResponse
}

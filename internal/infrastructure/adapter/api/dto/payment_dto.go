package dto

// InitPaymentRequest represents the API request for opening a payment
type InitPaymentRequest struct {
	UserID int64   `json:"user_id" binding:"required,gt=0"`
	Email  *string `json:"email" binding:"omitempty,email,max=255"`
}

// InitPaymentResponse represents the API response for an opened payment
type InitPaymentResponse struct {
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
}

package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/usecase"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

// InitPayment handles the POST /api/v1/payments/init endpoint
func (h *PaymentHandler) InitPayment(c *gin.Context) {
	var req dto.InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErr := domainerr.NewValidationError("init request", err.Error(), err)
		h.logger.Warn("Invalid payment init request", logFields(validationErr))
		respondError(c, http.StatusBadRequest, validationErr, "Invalid request format")
		return
	}

	result, err := h.paymentUseCase.InitiatePayment(c.Request.Context(), usecase.InitiatePaymentRequest{
		TelegramID: req.UserID,
		Email:      req.Email,
	})
	if err != nil {
		status, message := initErrorStatus(err)
		h.logger.Error("Payment init failed", map[string]any{
			"telegram_id": req.UserID,
			"status":      status,
			"error":       err.Error(),
		})
		respondError(c, status, err, message)
		return
	}

	c.JSON(http.StatusCreated, dto.InitPaymentResponse{
		PaymentURL: result.PaymentURL,
		OrderID:    result.OrderID,
	})
}

// initErrorStatus maps a payment init error to its HTTP status and public message
func initErrorStatus(err error) (int, string) {
	switch {
	case domainerr.IsValidationError(err), errors.Is(err, domainerr.ErrInvalidUserID):
		return http.StatusBadRequest, "Invalid request"
	case domainerr.IsUserNotFoundError(err):
		return http.StatusNotFound, "User not found"
	case domainerr.IsGatewayError(err):
		return http.StatusBadGateway, "Payment gateway unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

package payment

import (
	"context"
	"fmt"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/gateway"
	"github.com/contactbot/payment-processor/internal/domain/port/persistence"
	"github.com/contactbot/payment-processor/internal/domain/port/usecase"
	"github.com/google/uuid"
)

// Init results reported to metrics
const (
	resultSuccess      = "success"
	resultUnknownUser  = "unknown_user"
	resultGatewayError = "gateway_error"
	resultStoreError   = "store_error"
	resultInvalidInput = "invalid_request"
)

const (
	defaultGrantDays = 30
	initOperation    = "Init"
)

// Config holds the product and protocol settings shared by the payment flows
type Config struct {
	// Amount is the subscription price in the smallest currency unit
	Amount      int64
	Description string
	// NotificationURL is where the gateway posts status callbacks; empty uses the terminal default
	NotificationURL string
	// TerminalPassword is the shared secret used to verify callback tokens
	TerminalPassword string
	// GrantDays is how long a confirmed payment extends the subscription
	GrantDays int
	// SendReceipts enables receipts on init and closing receipts on confirmation
	SendReceipts bool
	Receipt      entity.ReceiptTemplate
}

func (c Config) grantDays() int {
	if c.GrantDays <= 0 {
		return defaultGrantDays
	}
	return c.GrantDays
}

// Service opens payments for bot users
type Service struct {
	uow          persistence.UnitOfWork
	gateway      gateway.PaymentGateway
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.PaymentMetrics
	config       Config
	newOrderID   func() string
}

// NewService creates a new payment Service
func NewService(
	uow persistence.UnitOfWork,
	paymentGateway gateway.PaymentGateway,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.PaymentMetrics,
	config Config,
) *Service {
	return &Service{
		uow:          uow,
		gateway:      paymentGateway,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		config:       config,
		newOrderID:   uuid.NewString,
	}
}

// InitiatePayment opens a payment for the user and stores it as a NEW transaction
func (s *Service) InitiatePayment(
	ctx context.Context,
	req usecase.InitiatePaymentRequest,
) (*usecase.InitiatePaymentResult, error) {
	if req.TelegramID <= 0 {
		s.metrics.IncPaymentInitiated(resultInvalidInput)
		return nil, errs.ErrInvalidUserID
	}

	var user *entity.User
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.uow.GetUserRepository(txCtx).GetByTelegramID(txCtx, req.TelegramID)
		return err
	})
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			s.metrics.IncPaymentInitiated(resultUnknownUser)
		} else {
			s.metrics.IncPaymentInitiated(resultStoreError)
		}
		return nil, err
	}

	orderID := s.newOrderID()
	initReq := gateway.InitPaymentRequest{
		OrderID:         orderID,
		Amount:          s.config.Amount,
		Description:     s.config.Description,
		NotificationURL: s.config.NotificationURL,
	}
	if s.config.SendReceipts && req.Email != nil {
		receipt := entity.NewSubscriptionReceipt(*req.Email, s.config.Amount, s.config.Receipt)
		initReq.Receipt = &receipt
	}

	log := s.logger.With(map[string]any{
		"order_id":    orderID,
		"user_id":     user.ID,
		"telegram_id": user.TelegramID,
	})

	result, err := s.gateway.InitiatePayment(ctx, initReq)
	if err != nil {
		log.Error("Gateway rejected payment init", map[string]any{"error": err.Error()})
		s.metrics.IncPaymentInitiated(resultGatewayError)
		return nil, err
	}
	if result.OrderID != orderID {
		s.metrics.IncPaymentInitiated(resultGatewayError)
		return nil, errs.NewGatewayError(initOperation, 0, "", "",
			fmt.Errorf("order id mismatch: sent %s, got %s", orderID, result.OrderID))
	}

	transaction, err := entity.NewTransaction(
		orderID,
		result.PaymentID,
		user.ID,
		result.Amount,
		result.Status,
		req.Email,
		s.timeProvider,
	)
	if err != nil {
		s.metrics.IncPaymentInitiated(resultGatewayError)
		return nil, errs.NewGatewayError(initOperation, 0, "", "", err)
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		return s.uow.GetTransactionRepository(txCtx).Create(txCtx, transaction)
	})
	if err != nil {
		log.Error("Failed to store initiated payment", map[string]any{
			"payment_id": result.PaymentID,
			"error":      err.Error(),
		})
		s.metrics.IncPaymentInitiated(resultStoreError)
		return nil, err
	}

	log.Info("Payment initiated", map[string]any{
		"payment_id": result.PaymentID,
		"amount":     result.Amount,
	})
	s.metrics.IncPaymentInitiated(resultSuccess)

	return &usecase.InitiatePaymentResult{
		OrderID:    orderID,
		PaymentURL: result.PaymentURL,
	}, nil
}

package payment

import (
	"context"
	"errors"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/gateway"
	"github.com/contactbot/payment-processor/internal/domain/port/messaging"
	"github.com/contactbot/payment-processor/internal/domain/port/persistence"
	"github.com/contactbot/payment-processor/internal/domain/port/usecase"
	"github.com/contactbot/payment-processor/internal/domain/signature"
)

// WebhookProcessor applies gateway status notifications to stored transactions.
// A notification that moves a transaction into CONFIRMED extends the owner's
// subscription in the same database transaction as the status change.
type WebhookProcessor struct {
	uow          persistence.UnitOfWork
	gateway      gateway.PaymentGateway
	publisher    messaging.EventPublisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.PaymentMetrics
	config       Config
}

// NewWebhookProcessor creates a new WebhookProcessor
func NewWebhookProcessor(
	uow persistence.UnitOfWork,
	paymentGateway gateway.PaymentGateway,
	publisher messaging.EventPublisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.PaymentMetrics,
	config Config,
) *WebhookProcessor {
	return &WebhookProcessor{
		uow:          uow,
		gateway:      paymentGateway,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		config:       config,
	}
}

// applied is what the status update did inside its transaction
type applied struct {
	previous    entity.TransactionStatus
	transaction *entity.Transaction
	granted     bool
	expiresAt   time.Time
}

// ProcessNotification authenticates the notification, applies it and grants
// the subscription on a first confirmation.
func (p *WebhookProcessor) ProcessNotification(
	ctx context.Context,
	n *entity.PaymentNotification,
) (usecase.NotificationResult, error) {
	log := p.logger.With(map[string]any{
		"order_id":   n.OrderID,
		"payment_id": n.PaymentID,
		"status":     string(n.Status),
	})

	if !signature.Verify(n.SigningPayload(), n.Token, p.config.TerminalPassword) {
		err := errs.NewAuthenticationError(n.OrderID, n.PaymentID)
		log.Warn("Rejected notification with invalid token", errorFields(err))
		return p.finish(ctx, n, entity.OutcomeUnauthorized, err)
	}

	var user *entity.User
	err := p.uow.Execute(ctx, func(txCtx context.Context) error {
		var err error
		user, err = p.uow.GetUserRepository(txCtx).GetByTransactionID(txCtx, n.OrderID)
		return err
	})
	if err != nil {
		if errs.IsNotFoundError(err) {
			log.Warn("Notification for unknown transaction ignored", nil)
			return p.finish(ctx, n, entity.OutcomeIgnored, nil)
		}
		log.Error("Failed to resolve transaction owner", map[string]any{"error": err.Error()})
		return p.finish(ctx, n, entity.OutcomeFailed, err)
	}

	var result applied
	err = p.uow.Execute(ctx, func(txCtx context.Context) error {
		result = applied{}
		return p.apply(txCtx, n, user, &result)
	})
	if err != nil {
		fields := errorFields(err)
		if errs.IsIntegrityError(err) {
			log.Error("Authenticated notification could not be applied", fields)
		} else {
			log.Error("Failed to apply notification", fields)
		}
		return p.finish(ctx, n, entity.OutcomeFailed, err)
	}

	if !result.granted {
		outcome := entity.OutcomeAccepted
		if result.previous.IsConfirmed() && n.Status.IsConfirmed() {
			outcome = entity.OutcomeDuplicate
		}
		log.Info("Notification applied", map[string]any{
			"previous_status": string(result.previous),
			"outcome":         string(outcome),
		})
		return p.finish(ctx, n, outcome, nil)
	}

	log.Info("Subscription granted", map[string]any{
		"user_id":    user.ID,
		"expires_at": result.expiresAt,
	})
	p.metrics.IncSubscriptionGranted()

	// The grant is committed; what follows must not fail the delivery
	afterCtx := context.WithoutCancel(ctx)
	p.publishGranted(afterCtx, log, user, result)
	p.sendClosingReceipt(afterCtx, log, result.transaction)

	return p.finish(ctx, n, entity.OutcomeAccepted, nil)
}

// apply locks the transaction row, stores the notified fields and extends the
// subscription when the payment has just been confirmed.
func (p *WebhookProcessor) apply(
	ctx context.Context,
	n *entity.PaymentNotification,
	user *entity.User,
	result *applied,
) error {
	transactionRepo := p.uow.GetTransactionRepository(ctx)

	current, err := transactionRepo.GetByIDForUpdate(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return errs.NewIntegrityError(n.OrderID, err)
		}
		return err
	}

	updated, err := transactionRepo.UpdateFields(ctx, n.OrderID, n.Update())
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return errs.NewIntegrityError(n.OrderID, err)
		}
		return err
	}
	if updated == nil {
		return errs.NewIntegrityError(n.OrderID, errs.ErrTransactionNotFound)
	}

	result.previous = current.Status
	result.transaction = updated

	if !entity.ConfirmsPayment(current.Status, updated.Status) {
		return nil
	}

	expiresAt := entity.SubscriptionExpiry(p.timeProvider.Now(), p.config.grantDays())
	_, err = p.uow.GetUserRepository(ctx).UpdateFields(ctx, user.ID, entity.UserUpdate{
		SubscriptionExpirationDate: &expiresAt,
	})
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			return errs.NewIntegrityError(n.OrderID, err)
		}
		return err
	}

	result.granted = true
	result.expiresAt = expiresAt
	return nil
}

func (p *WebhookProcessor) publishGranted(
	ctx context.Context,
	log coreport.Logger,
	user *entity.User,
	result applied,
) {
	if p.publisher == nil {
		return
	}

	event := messaging.SubscriptionGrantedEvent{
		UserID:        user.ID,
		TelegramID:    user.TelegramID,
		TransactionID: result.transaction.ID,
		PaymentID:     result.transaction.PaymentID,
		Amount:        result.transaction.Amount,
		ExpiresAt:     result.expiresAt,
		GrantedAt:     p.timeProvider.Now(),
	}
	if err := p.publisher.PublishSubscriptionGranted(ctx, event); err != nil {
		log.Warn("Failed to publish subscription event", map[string]any{"error": err.Error()})
	}
}

func (p *WebhookProcessor) sendClosingReceipt(
	ctx context.Context,
	log coreport.Logger,
	transaction *entity.Transaction,
) {
	if !p.config.SendReceipts || transaction.Email == nil || *transaction.Email == "" {
		return
	}

	receipt := entity.NewSubscriptionReceipt(*transaction.Email, transaction.Amount, p.config.Receipt)
	ok, err := p.gateway.SendClosingReceipt(ctx, transaction.PaymentID, receipt)
	switch {
	case err != nil:
		log.Warn("Failed to send closing receipt", errorFields(err))
	case !ok:
		log.Warn("Gateway declined closing receipt", nil)
	default:
		log.Debug("Closing receipt sent", nil)
	}
}

// finish writes the audit record, counts the outcome and builds the result
func (p *WebhookProcessor) finish(
	ctx context.Context,
	n *entity.PaymentNotification,
	outcome entity.NotificationOutcome,
	cause error,
) (usecase.NotificationResult, error) {
	record := &entity.NotificationRecord{
		OrderID:   n.OrderID,
		PaymentID: n.PaymentID,
		Status:    n.Status,
		Outcome:   outcome,
		Payload:   n.Raw,
	}
	if cause != nil {
		record.Error = cause.Error()
	}

	recordCtx := context.WithoutCancel(ctx)
	err := p.uow.Execute(recordCtx, func(txCtx context.Context) error {
		return p.uow.GetNotificationRepository(txCtx).Record(txCtx, record)
	})
	if err != nil {
		p.logger.Warn("Failed to record notification", map[string]any{
			"order_id": n.OrderID,
			"outcome":  string(outcome),
			"error":    err.Error(),
		})
	}

	p.metrics.IncNotification(string(outcome))
	return usecase.NotificationResult{Outcome: outcome}, cause
}

// errorFields returns the structured fields of a domain error, or just its message
func errorFields(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		fields := withFields.LogFields()
		if _, ok := fields["error"]; !ok {
			fields["error"] = err.Error()
		}
		return fields
	}
	return map[string]any{"error": err.Error()}
}

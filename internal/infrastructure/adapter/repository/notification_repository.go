package repository

import (
	"context"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationRepository appends gateway notifications to the audit log using GORM
type NotificationRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Record appends one delivery to the audit log, assigning its ID when empty
func (r *NotificationRepository) Record(ctx context.Context, record *entity.NotificationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	notificationModel := model.PaymentNotification{
		ID:         record.ID,
		OrderID:    record.OrderID,
		PaymentID:  record.PaymentID,
		Status:     string(record.Status),
		Outcome:    string(record.Outcome),
		Error:      record.Error,
		Payload:    datatypes.JSON(record.Payload),
		ReceivedAt: r.timeProvider.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&notificationModel).Error; err != nil {
		r.logger.Error("Failed to record payment notification", map[string]any{
			"order_id": record.OrderID,
			"outcome":  record.Outcome,
			"error":    err.Error(),
		})
		return storeError(err)
	}

	r.logger.Debug("Payment notification recorded", map[string]any{
		"notification_id": record.ID,
		"order_id":        record.OrderID,
		"outcome":         record.Outcome,
	})
	return nil
}

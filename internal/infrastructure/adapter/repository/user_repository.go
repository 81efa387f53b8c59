package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) *entity.User {
	return &entity.User{
		ID:                         userModel.ID,
		TelegramID:                 userModel.TelegramID,
		Username:                   userModel.Username,
		FirstName:                  userModel.FirstName,
		LastName:                   userModel.LastName,
		TrialState:                 userModel.TrialState,
		SubscriptionExpirationDate: userModel.SubscriptionExpirationDate,
		CreatedAt:                  userModel.CreatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("User not found", fields)
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate user", fields)
		return errs.ErrDuplicateUser
	}

	logFields := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		logFields[k] = v
	}
	logFields["error"] = err.Error()
	logFields["error_class"] = string(r.errorClassifier.Classify(err))
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)

	return storeError(err)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	fields := map[string]any{
		"user_id":     user.ID,
		"telegram_id": user.TelegramID,
	}
	r.logger.Debug("Creating new user", fields)

	userModel := model.User{
		ID:                         user.ID,
		TelegramID:                 user.TelegramID,
		Username:                   user.Username,
		FirstName:                  user.FirstName,
		LastName:                   user.LastName,
		TrialState:                 user.TrialState,
		SubscriptionExpirationDate: user.SubscriptionExpirationDate,
		CreatedAt:                  user.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, fields)
	}

	r.logger.Info("User created successfully", fields)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	fields := map[string]any{"user_id": id}
	r.logger.Debug("Getting user by ID", fields)

	var userModel model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&userModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, fields)
	}

	return r.modelToEntity(&userModel), nil
}

// GetByTelegramID retrieves a user by the chat platform identifier
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	fields := map[string]any{"telegram_id": telegramID}
	r.logger.Debug("Getting user by telegram ID", fields)

	var userModel model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", telegramID).Take(&userModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting user by telegram id", err, fields)
	}

	return r.modelToEntity(&userModel), nil
}

// GetByTransactionID resolves the owner of a transaction
func (r *UserRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.User, error) {
	fields := map[string]any{"transaction_id": transactionID}
	r.logger.Debug("Getting user by transaction ID", fields)

	var userModel model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN transactions ON transactions.user_id = users.id").
		Where("transactions.id = ?", transactionID).
		Take(&userModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting user by transaction", err, fields)
	}

	return r.modelToEntity(&userModel), nil
}

// UpdateFields writes the non-nil fields of update and returns the stored row
func (r *UserRepository) UpdateFields(ctx context.Context, id string, update entity.UserUpdate) (*entity.User, error) {
	fields := map[string]any{"user_id": id}
	if update.IsEmpty() {
		r.logger.Debug("Empty user update, nothing to persist", fields)
		return nil, nil
	}

	values := make(map[string]any, 2)
	if update.TrialState != nil {
		values["trial_state"] = *update.TrialState
	}
	if update.SubscriptionExpirationDate != nil {
		values["subscription_expiration_date"] = *update.SubscriptionExpirationDate
	}

	r.logger.Debug("Updating user", fields)

	var userModel model.User
	result := r.db.WithContext(ctx).Model(&userModel).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return nil, r.handleDatabaseError("updating user", result.Error, fields)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during update", fields)
		return nil, errs.ErrUserNotFound
	}

	r.logger.Info("User updated successfully", map[string]any{
		"user_id":                      id,
		"subscription_expiration_date": userModel.SubscriptionExpirationDate,
	})
	return r.modelToEntity(&userModel), nil
}

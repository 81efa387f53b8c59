package repository

import (
	"context"
	"errors"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:        transaction.ID,
		PaymentID: transaction.PaymentID,
		UserID:    transaction.UserID,
		Amount:    transaction.Amount,
		Status:    string(transaction.Status),
		Email:     transaction.Email,
		CreatedAt: transaction.CreatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:        m.ID,
		PaymentID: m.PaymentID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		Status:    entity.TransactionStatus(m.Status),
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
	})

	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(&transactionModel)
	if result.Error != nil {
		switch {
		case r.errorClassifier.IsDuplicateKeyError(result.Error):
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": transaction.ID,
				"user_id":        transaction.UserID,
			})
			return errs.NewDuplicateTransactionError(transaction.ID, transaction.UserID)
		case r.errorClassifier.IsForeignKeyError(result.Error):
			r.logger.Warn("Transaction owner does not exist", map[string]any{
				"transaction_id": transaction.ID,
				"user_id":        transaction.UserID,
			})
			return errs.ErrUserNotFound
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": transaction.ID,
			"user_id":        transaction.UserID,
			"error":          result.Error.Error(),
		})
		return storeError(result.Error)
	}

	r.logger.Info("Transaction created successfully", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
		"status":         transaction.Status,
	})
	return nil
}

// GetByID retrieves a transaction by its order ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.get(ctx, id, r.db.WithContext(ctx))
}

// GetByIDForUpdate retrieves a transaction holding a row lock until the
// surrounding database transaction ends
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.get(ctx, id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}))
}

func (r *TransactionRepository) get(ctx context.Context, id string, query *gorm.DB) (*entity.Transaction, error) {
	r.logger.Debug("Getting transaction by ID", map[string]any{
		"transaction_id": id,
	})

	var transactionModel model.Transaction
	result := query.Where("id = ?", id).Take(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Debug("Transaction not found", map[string]any{
				"transaction_id": id,
			})
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, storeError(result.Error)
	}

	return r.modelToEntity(&transactionModel), nil
}

// UpdateFields writes the non-nil fields of update and returns the stored row
func (r *TransactionRepository) UpdateFields(ctx context.Context, id string, update entity.TransactionUpdate) (*entity.Transaction, error) {
	if update.IsEmpty() {
		r.logger.Debug("Empty transaction update, nothing to persist", map[string]any{
			"transaction_id": id,
		})
		return nil, nil
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	values := make(map[string]any, 2)
	if update.PaymentID != nil {
		values["payment_id"] = *update.PaymentID
	}
	if update.Status != nil {
		values["status"] = string(*update.Status)
	}

	r.logger.Debug("Updating transaction", map[string]any{
		"transaction_id": id,
		"fields":         len(values),
	})

	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).Model(&transactionModel).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		r.logger.Error("Failed to update transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, storeError(result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"transaction_id": id,
		})
		return nil, errs.ErrTransactionNotFound
	}

	r.logger.Debug("Transaction updated successfully", map[string]any{
		"transaction_id": id,
		"status":         transactionModel.Status,
	})
	return r.modelToEntity(&transactionModel), nil
}

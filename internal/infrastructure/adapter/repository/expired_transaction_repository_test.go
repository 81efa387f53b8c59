package repository

import (
	"context"
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
)

func TestSelectExpiredForDeletionRequiresKeepStatuses(t *testing.T) {
	repo := NewExpiredTransactionRepository(nil, logger.NewNoopLogger())

	for name, keep := range map[string][]entity.TransactionStatus{
		"Nil keep list":   nil,
		"Empty keep list": {},
	} {
		t.Run(name, func(t *testing.T) {
			ids, err := repo.SelectExpiredForDeletion(context.Background(), time.Now(), keep, 10)

			assert.ErrorIs(t, err, errs.ErrNoKeepStatuses)
			assert.Nil(t, ids)
		})
	}
}

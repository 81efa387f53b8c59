package database

import (
	"fmt"

	errs "github.com/contactbot/payment-processor/internal/domain/error"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps failures of the transaction scope itself (begin, commit) to
// domain errors. Repository calls map their own errors.
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError wraps err as a store failure. The driver error stays in the chain so
// the retry policy can still recognize a refused connection.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if class := m.classifier.Classify(err); class != "" {
		return fmt.Errorf("%w: %s failed (%s): %w", errs.ErrDatabaseConnection, operation, class, err)
	}
	return fmt.Errorf("%w: %s failed: %w", errs.ErrDatabaseConnection, operation, err)
}

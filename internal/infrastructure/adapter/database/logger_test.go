package database

import (
	"context"
	"errors"
	"testing"
	"time"

	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabaseLogger(t *testing.T, elapsed time.Duration, level string) (logger.Interface, *coremocks.MockLogger) {
	coreLogger := coremocks.NewMockLogger(t)
	coreLogger.EXPECT().With(mock.Anything).Return(coreLogger).Once()

	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Since(mock.Anything).Return(elapsed).Maybe()

	return NewDatabaseLogger(coreLogger, mockTime, level), coreLogger
}

func TestDatabaseLoggerTrace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM transactions", 1 }

	t.Run("Regular queries are logged at debug", func(t *testing.T) {
		l, coreLogger := newTestDatabaseLogger(t, time.Millisecond, "info")
		coreLogger.EXPECT().Debug("SQL query", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["type"] == "SELECT" && fields["rows"] == int64(1)
		})).Once()

		l.Trace(context.Background(), time.Now(), query, nil)
	})

	t.Run("Slow queries are logged at warn", func(t *testing.T) {
		l, coreLogger := newTestDatabaseLogger(t, time.Second, "info")
		coreLogger.EXPECT().Warn("Slow SQL query", mock.Anything).Once()

		l.Trace(context.Background(), time.Now(), query, nil)
	})

	t.Run("Errors are logged with the cause", func(t *testing.T) {
		l, coreLogger := newTestDatabaseLogger(t, time.Millisecond, "info")
		coreLogger.EXPECT().Error("SQL error", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["error"] == "connection refused"
		})).Once()

		l.Trace(context.Background(), time.Now(), query, errors.New("connection refused"))
	})

	t.Run("Missing rows are not errors", func(t *testing.T) {
		l, coreLogger := newTestDatabaseLogger(t, time.Millisecond, "info")
		coreLogger.EXPECT().Debug("SQL query", mock.Anything).Once()

		l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	})

	t.Run("Silent level logs nothing", func(t *testing.T) {
		l, _ := newTestDatabaseLogger(t, time.Second, "silent")

		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))
	})
}

func TestExtractQueryType(t *testing.T) {
	assert.Equal(t, "DELETE", extractQueryType("  delete from transactions"))
	assert.Equal(t, "", extractQueryType("BEGIN"))
}

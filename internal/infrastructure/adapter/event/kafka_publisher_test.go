package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/port/messaging"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/logger"
	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	deadline bool
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, w.deadline = ctx.Deadline()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := messaging.SubscriptionGrantedEvent{
		UserID:        "user-1",
		TelegramID:    42,
		TransactionID: "order-1",
		PaymentID:     "1234567",
		Amount:        3000,
		ExpiresAt:     now.AddDate(0, 0, 30),
		GrantedAt:     now,
	}

	newPublisher := func(t *testing.T, writer *recordingWriter) *KafkaPublisher {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(now).Maybe()
		mockTime.EXPECT().WithTimeout(mock.Anything, time.Second).
			RunAndReturn(func(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
				return context.WithTimeout(ctx, d)
			}).Maybe()
		return newKafkaPublisher(writer, "payments", time.Second, mockTime, logger.NewNoopLogger())
	}

	t.Run("Event is keyed by user and encoded as JSON", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := newPublisher(t, writer)

		require.NoError(t, publisher.PublishSubscriptionGranted(context.Background(), event))

		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, []byte("user-1"), msg.Key)
		assert.Equal(t, now, msg.Time)
		assert.True(t, writer.deadline)
		require.Len(t, msg.Headers, 1)
		assert.Equal(t, messaging.EventSubscriptionGranted, string(msg.Headers[0].Value))

		var decoded messaging.SubscriptionGrantedEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "order-1", decoded.TransactionID)
		assert.Equal(t, int64(42), decoded.TelegramID)
		assert.True(t, decoded.ExpiresAt.Equal(event.ExpiresAt))
	})

	t.Run("Write failure is returned", func(t *testing.T) {
		writer := &recordingWriter{err: errors.New("broker down")}
		publisher := newPublisher(t, writer)

		err := publisher.PublishSubscriptionGranted(context.Background(), event)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")
	})

	t.Run("Timeout is reported as such", func(t *testing.T) {
		writer := &recordingWriter{err: context.DeadlineExceeded}
		publisher := newPublisher(t, writer)

		err := publisher.PublishSubscriptionGranted(context.Background(), event)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "write timeout")
	})

	t.Run("Close closes the writer", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := newPublisher(t, writer)

		require.NoError(t, publisher.Close())
		assert.True(t, writer.closed)
	})
}

func TestNewKafkaPublisher(t *testing.T) {
	mockTime := coremocks.NewMockTimeProvider(t)

	_, err := NewKafkaPublisher(nil, "payments", 0, mockTime, logger.NewNoopLogger())
	assert.Error(t, err)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "", 0, mockTime, logger.NewNoopLogger())
	assert.Error(t, err)

	publisher, err := NewKafkaPublisher([]string{"localhost:9092"}, "payments", 0, mockTime, logger.NewNoopLogger())
	require.NoError(t, err)
	assert.Equal(t, DefaultWriteTimeout, publisher.writeTimeout)
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(logger.NewNoopLogger())

	assert.NoError(t, publisher.PublishSubscriptionGranted(context.Background(), messaging.SubscriptionGrantedEvent{UserID: "u"}))
	assert.NoError(t, publisher.Close())
}

package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/messaging"
	"github.com/segmentio/kafka-go"
)

// DefaultWriteTimeout bounds a single publish when none is configured
const DefaultWriteTimeout = 5 * time.Second

// messageWriter is the part of kafka.Writer used by the publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes payment events as JSON messages keyed by user ID,
// so events of one user stay ordered within a partition.
type KafkaPublisher struct {
	writer       messageWriter
	topic        string
	writeTimeout time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers
func NewKafkaPublisher(
	brokers []string,
	topic string,
	writeTimeout time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is not configured")
	}
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka publisher initialized", map[string]any{
		"brokers": brokers,
		"topic":   topic,
	})

	return newKafkaPublisher(writer, topic, writeTimeout, timeProvider, logger), nil
}

func newKafkaPublisher(
	writer messageWriter,
	topic string,
	writeTimeout time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *KafkaPublisher {
	return &KafkaPublisher{
		writer:       writer,
		topic:        topic,
		writeTimeout: writeTimeout,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"source": "kafka"}),
	}
}

// PublishSubscriptionGranted writes one subscription.granted event
func (p *KafkaPublisher) PublishSubscriptionGranted(ctx context.Context, event messaging.SubscriptionGrantedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Time:  p.timeProvider.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(messaging.EventSubscriptionGranted)},
		},
	}

	writeCtx, cancel := p.timeProvider.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, message); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	p.logger.Debug("Published subscription event", map[string]any{
		"topic":          p.topic,
		"user_id":        event.UserID,
		"transaction_id": event.TransactionID,
	})
	return nil
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	p.logger.Info("Kafka publisher closed", nil)
	return nil
}

var _ messaging.EventPublisher = (*KafkaPublisher)(nil)
